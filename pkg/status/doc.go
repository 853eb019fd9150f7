/*
Package status owns every filesystem write made by a rename run and keeps a
record of what changed.

	            +-------------+
	            |   Status    |
	            |  (Commit)   |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+-----+
	|   Files   |           | Reporter |
	| (Storage) |           |  (Log)   |
	+-----------+           +----------+

🎯 Purpose:
- Reads files and writes them back atomically
- Moves files and directories, refusing to overwrite an existing target
- Records each change (content rewrite, move, identifier regeneration)
- Formats changes for the console and zerolog

🤝 Interfaces:
- FileManager: the commit hook used by the engine
- FileFormatter: turns a Change into a display line

Nothing here rolls back. If a run fails halfway the tree keeps every change
that was already committed and the Reporter lists exactly those.
*/
package status
