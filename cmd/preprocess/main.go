// Comando preprocess executa ingestão e pipeline sobre um arquivo JSON de
// traço, sem servidor, e imprime o tensor resultante.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"signature_go/internal/config"
	"signature_go/internal/ingestion"
	"signature_go/internal/models"
	"signature_go/internal/pipeline"
	"signature_go/pkg/logger"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigFile, "arquivo de configuração YAML")
	traceOnly := flag.Bool("trace", false, "imprime apenas o rastro do pipeline")
	verbose := flag.Bool("v", false, "log em nível DEBUG")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "uso: %s [opções] traço.json (ou - para stdin)\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger.Init()
	logger.SetOutput(os.Stderr)
	logger.SetIncludeFile(false)
	logger.SetLevel(logger.WARN)
	if *verbose {
		logger.SetLevel(logger.DEBUG)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		logger.Fatal("Erro ao carregar configurações", err)
	}

	response, err := run(flag.Arg(0), cfg)
	if err != nil {
		logger.Fatalf("%+v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	var out interface{} = response
	if *traceOnly {
		out = response.Trace
	}
	if err := encoder.Encode(out); err != nil {
		logger.Fatal("Erro ao escrever resultado", err)
	}
}

// run lê o traço bruto, completa-o como o gateway e executa o pipeline
func run(path string, cfg *config.Config) (*models.PreprocessResponse, error) {
	var input io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "abrir %s", path)
		}
		defer f.Close()
		input = f
	}

	var req models.NormalizationRequest
	if err := json.NewDecoder(input).Decode(&req); err != nil {
		return nil, errors.Wrap(err, "JSON do traço inválido")
	}

	normalized, err := ingestion.Normalize(req.StrokePoints, req.StrokeDurationMs, cfg.Ingestion)
	if err != nil {
		return nil, err
	}

	opts := pipeline.OptionsFromConfig(cfg.Pipeline)
	opts.PaddingStrategy = normalized.Strategy

	result, err := pipeline.Preprocess(normalized.Points, normalized.RealLength, opts)
	if err != nil {
		return nil, err
	}

	return &models.PreprocessResponse{
		Features: result.Features.Rows(),
		Mask:     result.Mask,
		Columns:  pipeline.ColumnNames,
		Trace:    result.Trace,
	}, nil
}
