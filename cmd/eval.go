package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/trknhr/hmmtag/internal/corpus"
	"github.com/trknhr/hmmtag/internal/evaluate"
	"github.com/trknhr/hmmtag/internal/model/entity"
	"github.com/trknhr/hmmtag/internal/model/hmm"
	"github.com/trknhr/hmmtag/internal/model/mfc"
)

func NewEvalCmd() *cobra.Command {
	var trainFrac float64
	var seed int64

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate tagging accuracy on a held-out corpus split",
		Long: `Splits the corpus into train/test, trains the HMM tagger and the
most-frequent-class baseline on the training part, and reports token-level
accuracy of both on the held-out part.`,
		Example: `
  hmmtag eval -c corpus.txt
  hmmtag eval -c brown.txt --split 0.9 --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			corpusPath, _ := cmd.Flags().GetString("corpus")
			sep, _ := cmd.Flags().GetString("sep")
			if corpusPath == "" {
				return fmt.Errorf("required flag: --corpus")
			}
			return RunEvaluation(os.Stdout, corpusPath, sep, trainFrac, seed)
		},
	}
	cmd.Flags().Float64Var(&trainFrac, "split", 0.8, "fraction of sentences used for training")
	cmd.Flags().Int64Var(&seed, "seed", 42, "seed for the train/test shuffle")
	return cmd
}

func RunEvaluation(w io.Writer, corpusPath, sep string, trainFrac float64, seed int64) error {
	start := time.Now()

	words, tags, err := corpus.NewFileLoader(corpusPath, sep).Load()
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}
	trainW, trainT, testW, testT := corpus.Split(words, tags, trainFrac, seed)
	if len(trainW) == 0 || len(testW) == 0 {
		return fmt.Errorf("split %v leaves an empty partition (%d train / %d test sentences)", trainFrac, len(trainW), len(testW))
	}

	taggers := []entity.TagModel{hmm.NewTagger(), mfc.NewTagger()}
	for _, tagger := range taggers {
		if err := tagger.Learn(trainW, trainT); err != nil {
			return fmt.Errorf("failed to train %s: %w", tagger.Name(), err)
		}
	}

	fmt.Fprintf(w, "corpus: %d sentences (%d train / %d test, seed %d)\n",
		len(words), len(trainW), len(testW), seed)

	var reports []*evaluate.Report
	for _, tagger := range taggers {
		report, err := evaluate.Evaluate(tagger, testW, testT)
		if err != nil {
			return err
		}
		reports = append(reports, report)
		fmt.Fprintf(w, "  %-4s %6.2f%%  (%d/%d tokens, %d failed sentences)\n",
			report.ModelName, report.Accuracy()*100, report.Correct, report.Tokens, report.Failed)
	}

	if len(reports) == 2 && reports[0].Accuracy() < reports[1].Accuracy() {
		fmt.Fprintf(w, "warning: hmm accuracy fell below the baseline\n")
	}
	fmt.Fprintf(w, "done in %v\n", time.Since(start).Round(time.Millisecond))
	return nil
}
