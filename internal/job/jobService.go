package job

import (
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/domain/jobModel"
)

// Service carries the ingest queue shared between handlers and the worker
// pool. RequestCount feeds the dispatcher's scale-up decision.
type Service struct {
	JobChannel        chan jobModel.IngestJob
	RequestCount      int64
	DispatcherChannel chan bool
}

type ServiceConfig struct {
	JobChannel        chan jobModel.IngestJob
	RequestCount      int64
	DispatcherChannel chan bool
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		JobChannel:        cfg.JobChannel,
		RequestCount:      cfg.RequestCount,
		DispatcherChannel: cfg.DispatcherChannel,
	}
}
