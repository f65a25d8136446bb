package command

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"

	"github.com/vshell/vsh"
	"github.com/vshell/vsh/config"
)

var catSpec = Spec{
	Name:    "cat",
	Usage:   "cat PATH",
	Help:    "Print the file's full content.",
	MinArgs: 1,
	MaxArgs: 1,
}

func catCmd(ctx *Context, inv *Invocation) (vsh.Output, error) {
	file, err := resolveFile(ctx, inv.Args[0])
	if err != nil {
		return vsh.Output{}, err
	}
	return vsh.TextOutput(string(file.Read())), nil
}

var headSpec = Spec{
	Name:  "head",
	Usage: "head [-n N] PATH",
	Help:  "Print the first N lines of the file. N larger than the file prints the whole file; N <= 0 prints nothing.",
	Flags: func(f *pflag.FlagSet) {
		f.IntP("lines", "n", config.DefaultHeadLines, "number of lines to print")
	},
	MinArgs: 1,
	MaxArgs: 1,
}

func headCmd(ctx *Context, inv *Invocation) (vsh.Output, error) {
	file, err := resolveFile(ctx, inv.Args[0])
	if err != nil {
		return vsh.Output{}, err
	}
	n := headLines(ctx, inv)
	if n <= 0 {
		return vsh.TextOutput(""), nil
	}
	lines := strings.Split(string(file.Read()), "\n")
	if n > len(lines) {
		n = len(lines)
	}
	return vsh.TextOutput(strings.Join(lines[:n], "\n")), nil
}

var tacSpec = Spec{
	Name:    "tac",
	Usage:   "tac PATH",
	Help:    "Print the file's lines in reverse order. An empty file prints nothing.",
	MinArgs: 1,
	MaxArgs: 1,
}

func tacCmd(ctx *Context, inv *Invocation) (vsh.Output, error) {
	file, err := resolveFile(ctx, inv.Args[0])
	if err != nil {
		return vsh.Output{}, err
	}
	content := string(file.Read())
	if content == "" {
		return vsh.TextOutput(""), nil
	}
	lines := strings.Split(content, "\n")
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return vsh.TextOutput(strings.Join(lines, "\n")), nil
}

var wcSpec = Spec{
	Name:  "wc",
	Usage: "wc [-l] [-w] [-m] [-L] PATH",
	Help: "Count lines, words, characters and the longest line length. " +
		"Without flags all four counts are printed. " +
		"-l counts newline characters: \"a\\nb\\nc\" has 2 lines, \"a\\nb\\nc\\n\" has 3.",
	Flags: func(f *pflag.FlagSet) {
		f.BoolP("lines", "l", false, "count newline characters")
		f.BoolP("words", "w", false, "count whitespace-separated words")
		f.BoolP("chars", "m", false, "count characters")
		f.BoolP("max-line-length", "L", false, "length of the longest line")
	},
	MinArgs: 1,
	MaxArgs: 1,
}

func wcCmd(ctx *Context, inv *Invocation) (vsh.Output, error) {
	file, err := resolveFile(ctx, inv.Args[0])
	if err != nil {
		return vsh.Output{}, err
	}
	content := string(file.Read())

	lines := strings.Count(content, "\n")
	words := len(strings.Fields(content))
	chars := utf8.RuneCountInString(content)
	longest := 0
	for _, line := range strings.Split(content, "\n") {
		if l := utf8.RuneCountInString(line); l > longest {
			longest = l
		}
	}

	wantLines, _ := inv.Flags.GetBool("lines")
	wantWords, _ := inv.Flags.GetBool("words")
	wantChars, _ := inv.Flags.GetBool("chars")
	wantLongest, _ := inv.Flags.GetBool("max-line-length")
	if !wantLines && !wantWords && !wantChars && !wantLongest {
		wantLines, wantWords, wantChars, wantLongest = true, true, true, true
	}

	var fields []string
	if wantLines {
		fields = append(fields, fmt.Sprint(lines))
	}
	if wantWords {
		fields = append(fields, fmt.Sprint(words))
	}
	if wantChars {
		fields = append(fields, fmt.Sprint(chars))
	}
	if wantLongest {
		fields = append(fields, fmt.Sprint(longest))
	}
	fields = append(fields, file.Name())
	return vsh.TextOutput(strings.Join(fields, " ")), nil
}
