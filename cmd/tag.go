package cmd

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trknhr/hmmtag/internal/corpus"
	"github.com/trknhr/hmmtag/internal/logger"
	"github.com/trknhr/hmmtag/internal/model"
	"github.com/trknhr/hmmtag/internal/store"
)

func NewTagCmd(db *sql.DB) *cobra.Command {
	var filterModels string

	cmd := &cobra.Command{
		Use:   "tag [words...]",
		Short: "Tag a sentence from arguments or stdin",
		Example: `
  hmmtag tag See Spot run
  cat sentences.txt | hmmtag tag`,
		RunE: func(cmd *cobra.Command, args []string) error {
			corpusPath, _ := cmd.Flags().GetString("corpus")
			sep, _ := cmd.Flags().GetString("sep")
			modelName, _ := cmd.Flags().GetString("model")

			modelStore := store.NewSQLModelStore(db)
			var loader corpus.Loader
			if corpusPath != "" {
				loader = corpus.NewFileLoader(corpusPath, sep)
			}
			engine, _, err := model.GenerateModel(modelStore, loader, modelName, filterModels)
			if err != nil {
				return err
			}

			tagOne := func(words []string) {
				res, err := engine.Predict(words)
				if err != nil {
					logger.Warn("skipping %q: %v", strings.Join(words, " "), err)
					fmt.Fprintf(os.Stderr, "no valid tag sequence for: %s\n", strings.Join(words, " "))
					return
				}
				parts := make([]string, len(words))
				for i, w := range words {
					parts[i] = w + sep + res.Tags[i]
				}
				fmt.Println(strings.Join(parts, " "))
			}

			if len(args) > 0 {
				tagOne(args)
				return nil
			}

			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				words := strings.Fields(scanner.Text())
				if len(words) == 0 {
					continue
				}
				tagOne(words)
			}
			return scanner.Err()
		},
	}
	cmd.Flags().StringVar(&filterModels, "filter-models", "", "[dev] comma-separated tagger list to use (hmm,mfc)")
	return cmd
}
