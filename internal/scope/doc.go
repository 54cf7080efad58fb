/*
Package scope builds the nested symbol table of a system and resolves the
type placeholders of its declarations.

The table is an arena of frames, one per System, Unit, Module and Function,
each holding the index of its parent. Lookups start at a frame and walk the
parent chain outward, so the nearest enclosing declaration wins. Nothing is
global: every resolution run owns its Table, and repeated runs never observe
each other.

Resolution runs in three passes over the raw tree:

 1. Declaration: open a frame for every unit, module and function and record
    every Data and Function name, reporting duplicates within one parent.

 2. Data fields: resolve each field's type from the declaring frame.

 3. Signatures: resolve parameter and return types of every function.

Function bodies are not inspected here; they are handed to the flow validator
together with the frame each function was declared in.
*/
package scope
