// Package output renders sestmpl results for people and for scripts.
//
// A Printer writes either styled, line-oriented text or JSON (--json):
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, isTTY)
//	printer.Status(output.ToneSuccess, "Template '%s' created successfully.", name)
//	printer.Error(err)
//
// Styles are disabled when the writer is not a terminal or --color never
// is given.
//
// Commands return *ExitError values so main can map them to a process exit
// code with GetExitCode:
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad flags, invalid catalog
//	output.ExitSystemError // 2: AWS setup failed
package output
