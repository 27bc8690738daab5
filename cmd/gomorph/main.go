// Command gomorph is the CLI front-end described in §6: a thin wrapper
// around the analyzer package plus a --init path that (re)builds a
// compiled artifact from an OpenCorpora XML dump.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kribrum-os/gomorph/analyzer"
	"github.com/kribrum-os/gomorph/dictionary"
	"github.com/kribrum-os/gomorph/grammeme"
	"github.com/kribrum-os/gomorph/internal/compile"
	"github.com/kribrum-os/gomorph/opencorpora"
)

var (
	dictPath string
	dbPath   string
	lang     string
	initDB   bool

	morph *analyzer.Analyzer
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := rootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("gomorph")
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gomorph",
		Short: "Russian morphological analyzer over an OpenCorpora dictionary",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if lang != "" && lang != "russian" {
				return fmt.Errorf("unsupported language %q: only russian is implemented", lang)
			}
			if initDB {
				if err := rebuild(dictPath, dbPath); err != nil {
					return fmt.Errorf("rebuilding database: %w", err)
				}
			}
			a, err := analyzer.Open(dbPath)
			if err != nil {
				return fmt.Errorf("opening dictionary at %s: %w", dbPath, err)
			}
			morph = a
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if morph != nil {
				return morph.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&dictPath, "dict", "", "path to the OpenCorpora XML dump (used with --init)")
	root.PersistentFlags().StringVar(&dbPath, "db", "./gomorph-db", "path to the compiled dictionary artifact directory")
	root.PersistentFlags().StringVarP(&lang, "lang", "l", "russian", "dictionary language (only russian is implemented)")
	root.PersistentFlags().BoolVar(&initDB, "init", false, "rebuild the compiled artifact from --dict before running")

	root.AddCommand(
		parseCmd(),
		parseGetCmd(),
		parseTagCmd(),
		normalizeCmd(),
		normalizeGetCmd(),
		normalizeTagCmd(),
		inflectCmd(),
		declensionCmd(),
		declensionGeographyCmd(),
	)
	return root
}

// rebuild implements --init: decode the OpenCorpora dump at dict, compile
// it, and save the two-file artifact to db.
func rebuild(dict, db string) error {
	if dict == "" {
		return fmt.Errorf("--init requires --dict")
	}
	d, err := opencorpora.LoadFromPathBuffered(dict)
	if err != nil {
		return err
	}
	art, words, entries, err := compile.Compile(d)
	if err != nil {
		return err
	}
	return dictionary.Save(db, art, words, entries)
}

func parseTags(tokens []string) grammeme.Tag {
	return grammeme.NewTag(tokens...)
}

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse WORD",
		Short: "Print every grammatical analysis of WORD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := morph.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Println(ps.String())
			return nil
		},
	}
}

func parseGetCmd() *cobra.Command {
	var index int
	cmd := &cobra.Command{
		Use:   "parse-get WORD",
		Short: "Print the i-th analysis of WORD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok, err := morph.ParseGet(args[0], index)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no parse at index %d", index)
			}
			fmt.Println(p.String())
			return nil
		},
	}
	cmd.Flags().IntVarP(&index, "index", "i", 0, "result index")
	return cmd
}

func parseTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse-tag WORD GRAMMEME...",
		Short: "Print analyses of WORD whose tag carries every named grammeme",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := parseTags(args[1:])
			ps, err := morph.ParseGrammemes(args[0], tag...)
			if err != nil {
				return err
			}
			fmt.Println(ps.String())
			return nil
		},
	}
}

func normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize WORD",
		Short: "Print every (lemma, tag) WORD could normalize to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := morph.Normalize(args[0])
			if err != nil {
				return err
			}
			fmt.Println(ps.String())
			return nil
		},
	}
}

func normalizeGetCmd() *cobra.Command {
	var index int
	cmd := &cobra.Command{
		Use:   "normalize-get WORD",
		Short: "Print the i-th normalization of WORD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok, err := morph.NormalizeGet(args[0], index)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no normalization at index %d", index)
			}
			fmt.Println(p.String())
			return nil
		},
	}
	cmd.Flags().IntVarP(&index, "index", "i", 0, "result index")
	return cmd
}

func normalizeTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize-tag WORD GRAMMEME...",
		Short: "Print normalizations of WORD whose tag carries every named grammeme",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := parseTags(args[1:])
			ps, err := morph.NormalizeGrammemes(args[0], tag...)
			if err != nil {
				return err
			}
			fmt.Println(ps.String())
			return nil
		},
	}
}

func inflectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inflect WORD [GRAMMEME...]",
		Short: "Print WORD's initial form, or the forms carrying the given grammemes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := parseTags(args[1:])
			ws, err := morph.InflectForms(args[0], tag)
			if err != nil {
				return err
			}
			fmt.Println(ws.String())
			return nil
		},
	}
}

func declensionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "declension WORD",
		Short: "Print every form sharing a paradigm with WORD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := morph.Declension(args[0])
			if err != nil {
				return err
			}
			fmt.Println(ws.String())
			return nil
		},
	}
}

// declensionGeographyCmd is declension restricted to forms tagged as
// geographic names (the Geox grammeme), for callers that only want place
// names out of a homograph's declension set.
func declensionGeographyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "declension-geography WORD",
		Short: "Print the Geox-tagged subset of WORD's declension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := morph.Declension(args[0])
			if err != nil {
				return err
			}
			geox := grammeme.ParseToken("Geox")
			var out analyzer.InflectWords
			for _, w := range ws {
				if w.Tag.Contains(geox) {
					out = append(out, w)
				}
			}
			fmt.Println(out.String())
			return nil
		},
	}
}
