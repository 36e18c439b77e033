/*
Package operation implements the replace run over a set of files.

	+-------------+
	|   Walker    |
	|   (Files)   |
	+------+------+
	       |
	+------+------+
	|  Operation  |
	| (Replace)   |
	+------+------+
	       |
	+------+------+
	|   Status    |
	|  (Storage)  |
	+-------------+

🎯 Purpose:
- Expands paths into files with the walker
- Applies the query to every line of every text file
- Prints the before/after diff of each changed line
- Rewrites files only when writing is enabled

🔄 Flow:
1. Walker lists the candidate files, sorted
2. Files are processed concurrently, up to Jobs at once
3. Binary and non UTF-8 files are skipped
4. Changes are reported through the console logger, one file at a time
5. When Write is set, status.Manager swaps each file atomically
6. A summary is printed; ErrNoMatches is returned when nothing matched

🤝 Interfaces:
- Operation: anything the OperationRunner can execute
- status.FileManager: file reads and writes
- status.StatusReporter: per file outcomes and progress

🔍 Example:

	op, err := operation.NewReplaceOperation(ctx, operation.Options{
		Query:   q,
		Paths:   []string{"."},
		Console: log.FromContext(ctx),
	})
	if err != nil {
		return err
	}
	err = operation.NewRunner(zerolog.Ctx(ctx), false).Run(ctx, op)
*/
package operation
