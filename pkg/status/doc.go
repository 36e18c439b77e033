/*
Package status manages file storage and status tracking for subvert.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           | Tracker |
	| (Storage) |           | (State) |
	+-----------+           +---------+

🎯 Purpose:
- Reads candidate files together with their mode and checksum
- Rewrites files atomically, keeping their permissions
- Refuses to overwrite a file that changed since it was read
- Tracks the outcome of every file (matched, written, skipped, failed)

🔄 Flow:
1. Operation reads a file through the FileManager
2. Replacements are computed in memory
3. When writing is enabled, ReplaceFile swaps the file in place
4. The outcome is recorded with TrackFile

🤝 Interfaces:
- FileManager: Handles file operations
- StatusReporter: Records file outcomes and progress
- FileFormatter: Formats status messages for debug logs

User-facing output lives in the log package; this package only logs at debug level.

🔍 Example:

	mgr := status.New(".", zerolog.Ctx(ctx))

	content, info, err := mgr.ReadFile(ctx, "main.go")
	// ... compute replacements ...
	err = mgr.ReplaceFile(ctx, info, newContent)

	info.Status = status.StatusWritten
	mgr.TrackFile(ctx, info)
*/
package status
