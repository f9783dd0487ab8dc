package settings

import "github.com/m04kA/SMC-FleetBookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
