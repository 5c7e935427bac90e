package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"lexai/internal/chunker"
	"lexai/internal/config"
	"lexai/internal/corpus"
	corpussqlite "lexai/internal/corpus/sqlite"
	"lexai/internal/domain"
	"lexai/internal/embedding"
	"lexai/internal/embedding/openai"
	"lexai/internal/embedding/tfidf"
	"lexai/internal/generator"
	"lexai/internal/generator/ollama"
	"lexai/internal/retriever"
	"lexai/internal/server"
	"lexai/internal/service"
	"lexai/internal/summarizer"
	"lexai/internal/vectorindex"
	indexmemory "lexai/internal/vectorindex/memory"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/lexai/config.yaml if not provided)")
	flag.Parse()
	inputs := flag.Args()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	entry := logrus.NewEntry(log)

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if len(inputs) == 0 {
		inputs = cfg.Corpus.Inputs
	}
	if len(inputs) == 0 {
		fmt.Println("Usage: lexai-server [--config=config.yaml] corpus.jsonl [file2.txt ...]")
		os.Exit(1)
	}

	var emb embedding.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb = tfidf.NewEmbedder()
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var ch domain.Chunker
	switch cfg.Chunker.Type {
	case "sentence", "":
		ch = chunker.NewSentenceChunker(cfg.Chunker.SentencesPerChunk, cfg.Chunker.OverlapSentences)
	default:
		log.Fatalf("unknown chunker: %s", cfg.Chunker.Type)
	}

	var store corpus.Store
	switch cfg.Corpus.Type {
	case "memory", "":
		store = corpus.NewMemoryStore()
	case "sqlite":
		if cfg.Corpus.Path == "" {
			log.Fatalf("sqlite corpus path missing")
		}
		s, err := corpussqlite.Open(cfg.Corpus.Path)
		if err != nil {
			log.Fatalf("open sqlite corpus failed: %v", err)
		}
		defer s.Close()
		store = s
	default:
		log.Fatalf("unknown corpus store: %s", cfg.Corpus.Type)
	}

	var index vectorindex.Index = indexmemory.NewIndex()
	cache := embedding.NewCache(cfg.Retriever.CacheSize)
	ret := retriever.New(emb, index, store, cache, entry)

	var backend domain.Backend
	switch cfg.Generator.Backend {
	case "ollama", "":
		backend = ollama.NewClient(ollama.Config{
			BaseURL: cfg.Generator.BaseURL,
			Model:   cfg.Generator.Model,
		})
	case "none":
		backend = nil
	default:
		log.Fatalf("unknown generator backend: %s", cfg.Generator.Backend)
	}
	gen := generator.New(backend, time.Duration(cfg.Generator.TimeoutSecs)*time.Second, entry)

	svc := service.NewLegalService(ch, emb, store, index, ret, gen, summarizer.NewFrequencySummarizer(), cfg.Retriever.TopK, entry)
	summary, err := svc.Ingest(inputs)
	if err != nil {
		log.Fatalf("ingest failed: %v", err)
	}
	log.Infof("corpus ready: %s", summary)

	srv := server.New(svc, entry)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-done
		log.Info("shutting down")
		_ = srv.Shutdown()
	}()

	log.Infof("listening on %s", cfg.Server.Addr)
	if err := srv.Listen(cfg.Server.Addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
