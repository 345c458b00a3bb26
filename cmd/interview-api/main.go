package main

import (
	"log"
	"net/http"
	"os"

	httpadapter "github.com/devgrade/interview-agent/internal/adapters/http"
	"github.com/devgrade/interview-agent/internal/adapters/llm"
	"github.com/devgrade/interview-agent/internal/adapters/storage/badgerstore"
	memstore "github.com/devgrade/interview-agent/internal/adapters/storage/memory"
	"github.com/devgrade/interview-agent/internal/adapters/storage/transcriptfile"
	"github.com/devgrade/interview-agent/internal/app/interview"
	"github.com/devgrade/interview-agent/internal/app/tools"
	"github.com/devgrade/interview-agent/internal/config"
	"github.com/devgrade/interview-agent/internal/domain"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	gen, err := buildGenerator(cfg)
	if err != nil {
		log.Fatalf("error initializing text generator: %v", err)
	}

	var store domain.StateStore
	switch cfg.StorageBackend {
	case "badger":
		log.Printf("[STORE] Using BadgerDB storage (path=%s)", cfg.BadgerPath)
		bs, err := badgerstore.Open(cfg.BadgerPath)
		if err != nil {
			log.Fatalf("error opening badger store: %v", err)
		}
		defer bs.Close()
		store = bs
	default:
		log.Println("[STORE] Using in-memory storage")
		store = memstore.NewStateStore()
	}

	archive := transcriptfile.NewStore(cfg.TranscriptDir)
	svc := interview.NewService(gen, store, tools.NewTranscriptTool(archive))

	handler := httpadapter.NewServer(svc)

	port := ":" + cfg.Port
	log.Println("Interview API listening on port:", port)
	if err := http.ListenAndServe(port, handler); err != nil {
		log.Fatal(err)
	}
}

func buildGenerator(cfg *config.Config) (domain.TextGenerator, error) {
	if os.Getenv("INTERVIEW_USE_MOCK_LLM") == "1" || cfg.Backend == config.BackendMock {
		log.Println("[LLM] Using scripted mock generator")
		return llm.NewScriptedGenerator(), nil
	}

	backend, err := cfg.ResolveBackend()
	if err != nil {
		return nil, err
	}

	switch backend {
	case config.BackendGroq:
		return llm.NewGroqClient(cfg.GroqAPIKey, cfg.ModelName, cfg.Temperature)
	default:
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.ModelName, cfg.Temperature)
	}
}
