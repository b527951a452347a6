package corpus

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/trknhr/hmmtag/internal/counts"
)

// Read parses a tagged corpus: one sentence per line, whitespace-separated
// tokens, each token "word<sep>TAG". The separator is searched from the
// right so words may contain it.
func Read(r io.Reader, sep string) (words, tags [][]string, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var ws, ts []string
		for _, tok := range strings.Fields(line) {
			idx := strings.LastIndex(tok, sep)
			if idx <= 0 || idx == len(tok)-len(sep) {
				return nil, nil, fmt.Errorf("%w: line %d: token %q has no %q separator", counts.ErrMalformedSequence, lineNo, tok, sep)
			}
			ws = append(ws, tok[:idx])
			ts = append(ts, tok[idx+len(sep):])
		}
		words = append(words, ws)
		tags = append(tags, ts)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return words, tags, nil
}

// Split shuffles sentence indices with the given seed and partitions the
// corpus into train/test. The same seed always yields the same split.
func Split(words, tags [][]string, trainFrac float64, seed int64) (trainW, trainT, testW, testT [][]string) {
	idx := make([]int, len(words))
	for i := range idx {
		idx[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	cut := int(float64(len(idx)) * trainFrac)
	for n, i := range idx {
		if n < cut {
			trainW = append(trainW, words[i])
			trainT = append(trainT, tags[i])
		} else {
			testW = append(testW, words[i])
			testT = append(testT, tags[i])
		}
	}
	return trainW, trainT, testW, testT
}

// Loader abstracts where the tagged corpus comes from, so the sync worker
// can stat it without knowing the format.
type Loader interface {
	Load() (words, tags [][]string, err error)
	GetCurrentMtime() (int64, error)
	Path() string
	Key() string
}

type FileLoader struct {
	path string
	sep  string
}

func NewFileLoader(path, sep string) *FileLoader {
	return &FileLoader{path: path, sep: sep}
}

func (l *FileLoader) Load() ([][]string, [][]string, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Read(f, l.sep)
}

func (l *FileLoader) GetCurrentMtime() (int64, error) {
	info, err := os.Stat(l.path)
	if err != nil {
		return 0, err
	}
	return info.ModTime().Unix(), nil
}

func (l *FileLoader) Path() string {
	return l.path
}

func (l *FileLoader) Key() string {
	return "corpus"
}
