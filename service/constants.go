package service

import "time"

const (
	MaxPayoffMonths    = 720 // 60 años, límite de seguridad de la simulación
	MaxDebtsPerRequest = 50  // máximo de deudas por request
	MaxDebtAmount      = 100_000_000.0
	MaxInterestRate    = 1000.0 // 1000% anual

	MaxInstallments = 120 // máximo de cuotas por compra

	DefaultProjectionTTL = 10 * time.Minute
)
