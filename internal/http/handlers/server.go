package handlers

import (
	"github.com/rogerio-castellano/inventory-sheets/internal/inventory"
	"github.com/rogerio-castellano/inventory-sheets/internal/logger"
	"github.com/rogerio-castellano/inventory-sheets/internal/metrics"
)

var (
	inventoryService *inventory.Service
	dispatchMetrics  *metrics.DispatchMetrics
	log              = logger.Nop()
)

func SetInventoryService(s *inventory.Service) {
	inventoryService = s
}

func SetDispatchMetrics(m *metrics.DispatchMetrics) {
	dispatchMetrics = m
}

func SetLogger(l *logger.Logger) {
	if l == nil {
		l = logger.Nop()
	}
	log = l
}
