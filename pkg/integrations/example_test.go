package integrations_test

import (
	"fmt"

	"github.com/matzehuels/pipreq/pkg/integrations"
)

func ExampleNormalizePkgName() {
	fmt.Println(integrations.NormalizePkgName("FastAPI"))
	fmt.Println(integrations.NormalizePkgName("django_haystack"))
	fmt.Println(integrations.NormalizePkgName("zope.interface"))
	// Output:
	// fastapi
	// django-haystack
	// zope-interface
}

func Example_errors() {
	fmt.Println("ErrNotFound:", integrations.ErrNotFound)
	fmt.Println("ErrNetwork:", integrations.ErrNetwork)
	// Output:
	// ErrNotFound: not found
	// ErrNetwork: network error
}
