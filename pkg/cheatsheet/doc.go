/*
Package cheatsheet renders an event graph into a single static HTML
page.

The page is self-contained: embedded stylesheet, a settings toggle for
showing the full text of event responses, an alphabetical section per
event and event list, and a section per ship fight. Nodes referenced
exactly once are rendered inline under their parent; everything else
gets an anchored heading and cross links. After rendering, the
renderer can report nodes that never made it onto the page and links
that point nowhere.
*/
package cheatsheet
