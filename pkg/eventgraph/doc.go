/*
Package eventgraph turns a loaded data corpus into the graph of events,
weighted event groups, and ship fights that the cheatsheet renders.

Building the graph up front, with a unique id per node, lets the data
files be processed in any order and makes it possible to merge the
duplicated branches some event lists contain. The package also works
out which events are reachable roots and which nodes are referenced
exactly once and can therefore be inlined under their parent instead
of getting a section of their own.
*/
package eventgraph
