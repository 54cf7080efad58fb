/*
Package flow validates function bodies against the symbol table produced by
the scope package.

Each function is walked in declaration order with a local scope that starts
as the parameter set and grows as spawn results and let bindings are
introduced. The local scope is a persistent, append-only list: binding a name
returns a new scope and never changes the old one, so no state is shared
between functions and validating one function cannot affect another.

Rules enforced for every reference:

  - it must already be bound in the local scope at that point of the body;
  - if it carries a type hint, the hint must resolve and equal the type
    recorded at the binding site;
  - if it carries no hint, it takes the binding-site type.

A spawn result or let binding may not rebind a name already in scope.
*/
package flow
