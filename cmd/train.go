package cmd

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trknhr/hmmtag/internal/corpus"
	"github.com/trknhr/hmmtag/internal/model/hmm"
	"github.com/trknhr/hmmtag/internal/store"
)

func NewTrainCmd(db *sql.DB) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the tagger from a corpus and persist its count tables",
		Example: `
  hmmtag train -c corpus.txt
  hmmtag train -c brown.txt --sep "/" --model brown`,
		RunE: func(cmd *cobra.Command, args []string) error {
			corpusPath, _ := cmd.Flags().GetString("corpus")
			sep, _ := cmd.Flags().GetString("sep")
			modelName, _ := cmd.Flags().GetString("model")
			if corpusPath == "" {
				return fmt.Errorf("required flag: --corpus")
			}

			loader := corpus.NewFileLoader(corpusPath, sep)
			words, tags, err := loader.Load()
			if err != nil {
				return err
			}
			m, err := hmm.Train(words, tags)
			if err != nil {
				return err
			}

			modelStore := store.NewSQLModelStore(db)
			if err := modelStore.SaveTables(modelName, m.Tables()); err != nil {
				return err
			}
			if mtime, err := loader.GetCurrentMtime(); err == nil {
				if err := modelStore.UpdateMetadata(loader.Key(), loader.Path(), mtime); err != nil {
					return err
				}
			}

			tokens := 0
			for _, s := range words {
				tokens += len(s)
			}
			fmt.Printf("trained model %q: %d sentences, %d tokens, %d tags, %d distinct words\n",
				modelName, len(words), tokens, len(m.Tags()), m.VocabSize())
			return nil
		},
	}
	return cmd
}
