package pep440_test

import (
	"fmt"

	"github.com/matzehuels/pipreq/pkg/pep440"
)

func ExampleNormalize() {
	for _, s := range []string{"v2.5-ALPHA_20", "1.0-1", "1!01.2.dev", "1.0+local-version", "not-a-version"} {
		v, ok := pep440.Normalize(s)
		fmt.Println(ok, v)
	}
	// Output:
	// true 2.5a20
	// true 1.0.post1
	// true 1!1.2.dev0
	// true 1.0+local.version
	// false
}
