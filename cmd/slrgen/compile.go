package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rokuyo/slrgen/grammar"
	"github.com/rokuyo/slrgen/spec"
)

var compileFlags = struct {
	output *string
	dot    *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Compile a grammar definition into a parsing table",
		Example: `  slrgen compile grammar.json -o expr.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	compileFlags.dot = cmd.Flags().String("dot", "", "write the LR(0) automaton in the dot format to a file")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	gram, err := readGrammar(args)
	if err != nil {
		return err
	}

	cgram, report, err := grammar.Compile(gram)
	if err != nil {
		return err
	}

	err = writeCompiledGrammarAndReport(cgram, report, *compileFlags.output)
	if err != nil {
		return fmt.Errorf("cannot write the output files: %w", err)
	}

	if *compileFlags.dot != "" {
		err := writeDOT(gram, *compileFlags.dot)
		if err != nil {
			return fmt.Errorf("cannot write the dot file: %w", err)
		}
	}

	if n := cgram.Syntactic.ConflictCount; n > 0 {
		if n == 1 {
			fmt.Fprintf(os.Stderr, "1 conflict; the grammar is not SLR(1)\n")
		} else {
			fmt.Fprintf(os.Stderr, "%v conflicts; the grammar is not SLR(1)\n", n)
		}
	}

	return nil
}

func readGrammar(args []string) (*grammar.Grammar, error) {
	var src io.Reader
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("cannot open the grammar file %s: %w", args[0], err)
		}
		defer f.Close()
		src = f
	} else {
		src = os.Stdin
	}

	def, err := spec.ParseGrammarDef(src)
	if err != nil {
		return nil, err
	}

	b := grammar.GrammarBuilder{
		Def: def,
	}
	return b.Build()
}

// writeCompiledGrammarAndReport writes a compiled grammar and its report.
// When the path is a directory, the files land at <path>/<grammar-name>.json
// and <path>/<grammar-name>-report.json. When the path names a file, the
// report goes to <grammar-name>-report.json in the same directory. When the
// path is empty, the compiled grammar goes to stdout and the report to the
// working directory.
func writeCompiledGrammarAndReport(cgram *spec.CompiledGrammar, report *spec.Report, path string) error {
	cgramPath, reportPath, err := makeOutputFilePaths(cgram.Name, path)
	if err != nil {
		return err
	}

	{
		var cgramW io.Writer
		if cgramPath != "" {
			cgramFile, err := os.OpenFile(cgramPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
			if err != nil {
				return err
			}
			defer cgramFile.Close()
			cgramW = cgramFile
		} else {
			cgramW = os.Stdout
		}

		b, err := json.Marshal(cgram)
		if err != nil {
			return err
		}
		fmt.Fprintf(cgramW, "%v\n", string(b))
	}

	{
		reportFile, err := os.OpenFile(reportPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer reportFile.Close()

		b, err := json.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Fprintf(reportFile, "%v\n", string(b))
	}

	return nil
}

func makeOutputFilePaths(gramName string, path string) (string, string, error) {
	reportFileName := gramName + "-report.json"

	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", "", err
		}
		return "", filepath.Join(wd, reportFileName), nil
	}

	fi, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		return "", "", err
	}
	if os.IsNotExist(err) || !fi.IsDir() {
		dir, _ := filepath.Split(path)
		return path, filepath.Join(dir, reportFileName), nil
	}

	return filepath.Join(path, gramName+".json"), filepath.Join(path, reportFileName), nil
}

func writeDOT(gram *grammar.Grammar, path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	return grammar.WriteDOT(gram, f)
}
