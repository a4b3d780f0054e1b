// Command cgraph executes a declarative pipeline document against named
// input files. Documents can be run straight from a file, or saved into
// a file-backed store and run later by ID.
//
// Usage:
//
//	cgraph -pipeline doc.json -input main_input=corpus.txt -output result.txt [flags]
//	cgraph -store dir -save -pipeline doc.json -name word_count [-description ...]
//	cgraph -store dir -list
//	cgraph -store dir -id <id> -input main_input=corpus.txt -output result.txt
//
// Flags:
//
//	-pipeline string
//	    Path to the pipeline document
//	-store string
//	    Directory of the pipeline store used by -save, -list and -id
//	-save
//	    Validate -pipeline, save it into the store and print its ID
//	-name string
//	    Pipeline name used with -save (required)
//	-description string
//	    Pipeline description used with -save
//	-list
//	    List the pipelines in the store
//	-id string
//	    Run the stored pipeline with this ID instead of -pipeline
//	-input name=path
//	    Bind an external input name to a file; repeat per input
//	-output string
//	    Path the final result is written to; "-" for standard output (default "-")
//	-verbose
//	    Print progress diagnostics to standard error
//	-log-level string
//	    Minimum log level: debug, info, warn, error (default "info")
//
// Example:
//
//	# Save the word-count document once, then run it by ID
//	cgraph -store ~/.cgraph -save -pipeline wordcount.json -name word_count
//	cgraph -store ~/.cgraph -id <id> -input main_input=text_corpus.txt -output word_count_output.txt -verbose
//
// Callables referenced by the document are resolved against the builtin
// registry (split_words, count_rows, first_of_group, count_group).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/dvpolyakov/computational-graph/pkg/config"
	"github.com/dvpolyakov/computational-graph/pkg/engine"
	"github.com/dvpolyakov/computational-graph/pkg/logging"
	"github.com/dvpolyakov/computational-graph/pkg/pipeline"
	"github.com/dvpolyakov/computational-graph/pkg/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cgraph: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		pipelinePath = flag.String("pipeline", "", "path to the pipeline document")
		storeDir     = flag.String("store", "", "directory of the pipeline store")
		save         = flag.Bool("save", false, "save -pipeline into the store and print its ID")
		name         = flag.String("name", "", "pipeline name used with -save")
		description  = flag.String("description", "", "pipeline description used with -save")
		list         = flag.Bool("list", false, "list the pipelines in the store")
		pipelineID   = flag.String("id", "", "run the stored pipeline with this ID")
		outputPath   = flag.String("output", "-", "path the final result is written to; - for stdout")
		verbose      = flag.Bool("verbose", false, "print progress diagnostics to stderr")
		logLevel     = flag.String("log-level", "info", "minimum log level: debug, info, warn, error")
	)
	inputs := make(map[string]string)
	flag.Func("input", "bind an external input name to a file as name=path (repeatable)", func(v string) error {
		name, path, ok := strings.Cut(v, "=")
		if !ok || name == "" || path == "" {
			return fmt.Errorf("want name=path, got %q", v)
		}
		inputs[name] = path
		return nil
	})
	flag.Parse()

	if *list {
		return listPipelines(*storeDir)
	}
	if *save {
		return savePipeline(*storeDir, *pipelinePath, *name, *description)
	}

	data, err := loadDocument(*pipelinePath, *storeDir, *pipelineID)
	if err != nil {
		return err
	}
	doc, err := pipeline.Parse(data)
	if err != nil {
		return err
	}
	final, _, err := pipeline.Build(doc, pipeline.DefaultRegistry())
	if err != nil {
		return err
	}

	if len(inputs) == 0 {
		return fmt.Errorf("at least one -input binding is required")
	}
	handles := make(map[string]io.ReadCloser, len(inputs))
	for name, path := range inputs {
		f, err := os.Open(path)
		if err != nil {
			// Close what we already opened; the run never starts.
			for _, h := range handles {
				h.Close()
			}
			return fmt.Errorf("opening input %q: %w", name, err)
		}
		handles[name] = f
	}

	var output io.WriteCloser
	if *outputPath == "-" {
		output = os.Stdout
	} else {
		f, err := os.Create(*outputPath)
		if err != nil {
			for _, h := range handles {
				h.Close()
			}
			return fmt.Errorf("creating output: %w", err)
		}
		output = f
	}

	cfg := config.Default()
	cfg.LogLevel = *logLevel

	eng := engine.NewWithConfig(cfg)
	eng.SetLogger(logging.New(logging.Config{Level: *logLevel, Pretty: true}))

	result, err := eng.Run(context.Background(), final, engine.RunParams{
		Inputs:  handles,
		Output:  output,
		Verbose: *verbose,
	})
	if err != nil {
		return err
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "execution %s: %d chains, %d rows written in %s\n",
			result.ExecutionID, result.Chains, result.RowsWritten, result.Duration)
	}
	return nil
}

// loadDocument resolves the pipeline document from the store (-id) or
// from a file (-pipeline).
func loadDocument(pipelinePath, storeDir, pipelineID string) ([]byte, error) {
	switch {
	case pipelineID != "":
		store, err := openStore(storeDir)
		if err != nil {
			return nil, err
		}
		p, err := store.Load(pipelineID)
		if err != nil {
			return nil, err
		}
		return p.Data, nil
	case pipelinePath != "":
		data, err := os.ReadFile(pipelinePath)
		if err != nil {
			return nil, fmt.Errorf("reading pipeline document: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("-pipeline or -id is required")
	}
}

// savePipeline validates a document and stores it under the given name
func savePipeline(storeDir, pipelinePath, name, description string) error {
	if pipelinePath == "" {
		return fmt.Errorf("-save requires -pipeline")
	}
	if name == "" {
		return fmt.Errorf("-save requires -name")
	}
	store, err := openStore(storeDir)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(pipelinePath)
	if err != nil {
		return fmt.Errorf("reading pipeline document: %w", err)
	}
	// Reject documents that could never run before they enter the store.
	doc, err := pipeline.Parse(data)
	if err != nil {
		return err
	}
	if _, _, err := pipeline.Build(doc, pipeline.DefaultRegistry()); err != nil {
		return err
	}
	id, err := store.Save(name, description, data)
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

// listPipelines prints the store's contents, one pipeline per line
func listPipelines(storeDir string) error {
	store, err := openStore(storeDir)
	if err != nil {
		return err
	}
	summaries := store.List()
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	for _, s := range summaries {
		line := fmt.Sprintf("%s\t%s", s.ID, s.Name)
		if s.Description != "" {
			line += "\t" + s.Description
		}
		fmt.Println(line)
	}
	return nil
}

func openStore(storeDir string) (storage.Store, error) {
	if storeDir == "" {
		return nil, fmt.Errorf("-store is required for store operations")
	}
	return storage.NewFileStore(storeDir)
}
