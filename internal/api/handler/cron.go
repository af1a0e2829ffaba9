package handler

import (
	"context"
	"net/http"

	"github.com/trackrcommerce/trackr-api/internal/scheduler"
	"github.com/trackrcommerce/trackr-api/pkg/apiErrors"
	"github.com/trackrcommerce/trackr-api/pkg/log"
)

const CronJobTypeOrderSync = "order-sync"

// ManualJob é um job agendado que também pode ser disparado pela API
type ManualJob interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

var _ ManualJob = (*scheduler.OrderSyncService)(nil)

// CronJobServices agrupa os jobs que podem ser disparados manualmente
type CronJobServices struct {
	OrderSyncService ManualJob
}

func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := pathParam(r, "type")

		switch cronType {
		case CronJobTypeOrderSync:
			if services.OrderSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Sincronização de pedidos não disponível", nil)
				return
			}

			started := services.OrderSyncService.TriggerManualSync(r.Context())

			log.ForContext(r.Context()).WithFields(log.Fields{
				"type":    cronType,
				"started": started,
			}).Info("cron: execução manual solicitada")

			message := "Sincronização iniciada"
			if !started {
				message = "Sincronização já está em andamento"
			}
			respond(w, map[string]any{"type": cronType, "started": started, "message": message}, nil)

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: order-sync", nil)
		}
	}
}

func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.OrderSyncService != nil {
			status[CronJobTypeOrderSync] = services.OrderSyncService.GetStatus()
		}
		respond(w, status, nil)
	}
}
