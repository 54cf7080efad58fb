// Package hcl_adapter is the front end of the compiler. It reads HCL source
// files and produces the raw declaration tree consumed by the resolver.
//
// The adapter performs only syntactic checks: block shapes, label counts and
// identifier validity. Type hints are recorded lexically (primitive names are
// recognised immediately, everything else stays an unsolved hint) and all name
// resolution is left to the scope resolver.
package hcl_adapter
