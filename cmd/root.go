package cmd

import (
	"database/sql"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/trknhr/hmmtag/internal/corpus"
	"github.com/trknhr/hmmtag/internal/model"
	"github.com/trknhr/hmmtag/internal/store"
	"github.com/trknhr/hmmtag/internal/tui"
	"github.com/trknhr/hmmtag/internal/worker"
)

func NewRootCmd(db *sql.DB) *cobra.Command {
	var corpusPath string
	var sep string
	var modelName string
	var filterModels string

	cmd := &cobra.Command{
		Use:   "hmmtag",
		Short: "Launch TUI for interactive part-of-speech tagging",
		RunE: func(cmd *cobra.Command, args []string) error {
			modelStore := store.NewSQLModelStore(db)
			var loader corpus.Loader
			if corpusPath != "" {
				loader = corpus.NewFileLoader(corpusPath, sep)
			}
			engine, hmmTagger, err := model.GenerateModel(modelStore, loader, modelName, filterModels)
			if err != nil {
				return err
			}
			if loader != nil {
				worker.LaunchSyncWorkers(worker.NewCorpusSyncWorker(modelStore, loader, hmmTagger, modelName))
			}

			m := tui.NewTuiModel(engine, strings.Join(args, " "))
			p := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("failed to run TUI: %w", err)
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&corpusPath, "corpus", "c", "", "path to a tagged corpus (one sentence per line, word/TAG tokens)")
	cmd.PersistentFlags().StringVar(&sep, "sep", "/", "word/tag separator in the corpus")
	cmd.PersistentFlags().StringVar(&modelName, "model", "default", "name of the stored model to use")
	cmd.Flags().StringVar(&filterModels, "filter-models", "", "[dev] comma-separated tagger list to use (hmm,mfc)")

	cmd.AddCommand(NewTrainCmd(db))
	cmd.AddCommand(NewTagCmd(db))
	cmd.AddCommand(NewEvalCmd())

	return cmd
}

func Execute(db *sql.DB) error {
	return NewRootCmd(db).Execute()
}
