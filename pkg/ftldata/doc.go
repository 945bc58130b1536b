/*
Package ftldata reads the XML data files of FTL: Advanced Edition into
typed Go structures.

It loads a whole data directory at once: event definitions, weighted
event lists, enemy ships, translation strings, and blueprint titles all
end up in a single Corpus that callers can query without caring which
file a node came from. The package also knows the display names the
game itself never spells out (species, systems, reward levels, and so
on) and can audit a directory for tags and attributes the rest of the
program does not understand yet.
*/
package ftldata
