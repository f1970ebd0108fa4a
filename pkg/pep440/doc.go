// Package pep440 canonicalizes Python package version strings.
//
// [Normalize] accepts the spellings PEP 440 allows and returns a [Version]
// whose String form is canonical:
//
//	v, _ := pep440.Normalize("v2.5-ALPHA_20")
//	fmt.Println(v) // 2.5a20
//
// The number of release segments is preserved, so "1.0" and "1.0.0" do not
// compare equal. Ordering between versions is not provided.
package pep440
