package storage

import "eventScope/internal/model"

// Storage defines a sink for classified transactions.
type Storage interface {
	PutResultBatch(results []model.ClassifiedTransaction) error
}
