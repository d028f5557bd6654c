// Package display formats user-facing terminal output that is not part of the
// run log: warnings about skipped or suspicious input and step-by-step
// progress for sheet validation.
//
// Colors are written only when the destination is a terminal:
//
//	display.WarnSkippedFiles(result.Skipped).Display(os.Stdout)
//
//	progress := display.NewProgressIndicator(os.Stdout, len(files))
//	progress.Start()
//	for _, file := range files {
//	    progress.Step(file)
//	}
//	progress.Complete()
package display
