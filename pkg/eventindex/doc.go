/*
Package eventindex exports a built event graph into a SQLite database.

The cheatsheet page is made for Ctrl-F; the index is made for ad-hoc
queries ("which events can unlock a ship?", "which lists reference
NEBULA_PIRATE?"). The schema is a straightforward relational view of
the graph: events with their ordered actions and choices, event lists
with their weighted entries, and ships with their fight branches.
*/
package eventindex
