package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docfill <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tokens     List the placeholders of a template")
	fmt.Fprintln(w, "  render     Fill a template and write DOCX or PDF")
	fmt.Fprintln(w, "  serve      Start the HTTP API")
	fmt.Fprintln(w, "  doctor     Check the render engine setup")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docfill help <command>' for details on a specific command.")
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --log-level <s>       trace, debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>      console or json")
	fmt.Fprintln(w, "  -v, --verbose             Debug logging")
}

func printEngineFlags(w io.Writer) {
	fmt.Fprintln(w, "Render engine:")
	fmt.Fprintln(w, "      --browser <path>      Chrome executable (ignored if missing)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF conversion timeout (default 60s)")
}

func printTokensUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docfill tokens <template> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List the distinct {placeholders} of a .docx or .pdf template in order")
	fmt.Fprintln(w, "of first appearance. With --verbose, print every occurrence with its")
	fmt.Fprintln(w, "byte offset in the flattened text.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Print a JSON array")
	printCommonFlags(w)
}

func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docfill render <template> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fill a template. Missing values render empty.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default <template>.filled.<ext>)")
	fmt.Fprintln(w, "  -f, --format <s>          docx (native, default) or pdf")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Values:")
	fmt.Fprintln(w, "  -s, --set <key=value>     Placeholder value (repeatable, wins over --values)")
	fmt.Fprintln(w, "      --values <file>       JSON object of placeholder values")
	fmt.Fprintln(w)
	printEngineFlags(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  docfill render letter.docx --set name=Alex --set amount=42")
	fmt.Fprintln(w, "  docfill render letter.docx --values data.json -f pdf -o letter.pdf")
}

func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docfill serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Start the HTTP API:")
	fmt.Fprintln(w, "  GET  /api/templates          List templates")
	fmt.Fprintln(w, "  GET  /api/template/{name}    Download a template")
	fmt.Fprintln(w, "  POST /api/upload             List placeholders of an uploaded template")
	fmt.Fprintln(w, "  POST /api/generate           Fill an uploaded template")
	fmt.Fprintln(w, "  GET  /health                 Health check")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default :5001)")
	fmt.Fprintln(w, "      --templates <dir>     Templates directory (default templates)")
	printEngineFlags(w)
	printCommonFlags(w)
}

func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docfill doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report the browser the render engine would launch, container and CI")
	fmt.Fprintln(w, "detection, and temp directory access.")
}
