package main

import (
	"bufio"
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"

	"github.com/lorekeep/lorekeep"
	"github.com/lorekeep/lorekeep/ai"
)

var sentences = []string{
	"Sourdough starters need feeding twice a day in warm kitchens.",
	"The garlic went in along the back fence before the first frost.",
	"Go workspaces let one checkout hold several modules at once.",
	"Badger keeps its value log separate from the LSM tree.",
	"Cold brew concentrate keeps for about two weeks in the fridge.",
	"The research paper argued that retrieval quality dominates model size.",
	"A habit tracker only works if checking it is itself a habit.",
	"Compost needs roughly thirty parts carbon to one part nitrogen.",
	"Vector search falls apart when the embedding model changes silently.",
	"The best interview questions have no single right answer.",
	"Tomatoes crack when watering is irregular, not when it is scarce.",
	"Structured logging pays for itself the first time production breaks.",
	"The course on fermentation starts with sauerkraut because it is forgiving.",
	"Reading groups work better with short papers and long discussions.",
	"A second brain is only useful if searching it beats rethinking.",
	"Index pages in a notebook turn chronology into a database.",
	"The api gateway should never know what the services store.",
	"Basil bolts the moment the nights stay warm.",
	"Most productivity systems fail at the capture step, not the review step.",
	"Schema migrations are easier to review than to roll back.",
	"The workshop covered knife sharpening angles for soft steel.",
	"Spaced repetition turns recognition into recall.",
	"Every cache is a bet about the future shape of reads.",
	"The trail notes say the north approach is impassable after rain.",
}

var (
	seedFileName = flag.String("src", "", "file of seed data")
	dbPath       = flag.String("db", "./lorekeep_db", "path to the note store directory")
	aiHost       = flag.String("ai-host", "http://localhost:11434/v1", "OpenAI-compatible service host URL")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

func main() {
	config := ai.NewConfig(ai.WithHost(*aiHost))

	assistant, err := lorekeep.NewAssistant(*dbPath, lorekeep.WithAIConfig(config))
	if err != nil {
		panic(err)
	}
	defer assistant.Close()

	ctx := context.Background()

	var source iter.Seq[string]
	if seedFileName != nil && *seedFileName != "" {
		source, err = linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = linesFromSlice(sentences)
	}

	seeded := 0
	for line := range source {
		if line == "" {
			continue
		}
		result := assistant.Process(ctx, line)
		if !result.Success {
			slog.Error("failed to seed note", "input", line, "error", result.Error)
			continue
		}
		seeded++
	}

	slog.Info("seeding complete", "notes", seeded)
}
