package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rokuyo/slrgen/driver"
	"github.com/rokuyo/slrgen/spec"
)

var parseFlags = struct {
	source *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a pre-tokenized input and print its syntax tree",
		Long: `parse runs the shift/reduce driver over a compiled grammar. The input is
a JSON array of [terminal, lexeme] pairs; tokenization happens upstream.`,
		Example: `  slrgen parse expr.json < tokens.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "tokens file path (default stdin)")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cgram, err := readCompiledGrammar(args[0])
	if err != nil {
		return err
	}

	var src io.Reader
	if *parseFlags.source != "" {
		f, err := os.Open(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("cannot open the tokens file %s: %w", *parseFlags.source, err)
		}
		defer f.Close()
		src = f
	} else {
		src = os.Stdin
	}

	toks, err := readTokens(cgram, src)
	if err != nil {
		return err
	}

	p, err := driver.NewParser(cgram, toks)
	if err != nil {
		return err
	}
	err = p.Parse()
	if err != nil {
		return err
	}

	if synErr := p.SyntaxError(); synErr != nil {
		return fmt.Errorf("syntax error: %v; expected: %v", synErr, synErr.ExpectedTerminals)
	}

	driver.PrintTree(os.Stdout, p.CST())

	return nil
}

func readCompiledGrammar(path string) (*spec.CompiledGrammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open the compiled grammar %s: %w", path, err)
	}
	defer f.Close()

	d, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	cgram := &spec.CompiledGrammar{}
	err = json.Unmarshal(d, cgram)
	if err != nil {
		return nil, err
	}

	return cgram, nil
}

func readTokens(cgram *spec.CompiledGrammar, src io.Reader) (driver.TokenStream, error) {
	d, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	var toks [][2]string
	err = json.Unmarshal(d, &toks)
	if err != nil {
		return nil, fmt.Errorf("cannot parse the tokens: %w", err)
	}

	return driver.NewTokenStream(cgram, toks)
}
