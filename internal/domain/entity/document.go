package entity

import "fmt"

// Estados de documento (entradas y salidas).
type DocumentStatus string

const (
	DocumentPosted DocumentStatus = "posted"
	DocumentVoided DocumentStatus = "voided"
)

// IsValid reporta si el estado pertenece al conjunto cerrado.
func (s DocumentStatus) IsValid() bool {
	return s == DocumentPosted || s == DocumentVoided
}

// Series documentales. Cada serie tiene su propio contador secuencial.
type DocumentSeries string

const (
	SeriesReceipt    DocumentSeries = "ENT"
	SeriesIssue      DocumentSeries = "SAL"
	SeriesAdjustment DocumentSeries = "AJU"
	SeriesTransfer   DocumentSeries = "TRF"
)

// FormatDocumentNumber produce el número legible de una serie: PREFIX-NNNNNN
// con relleno de ceros a 6 dígitos (ENT-000001, SAL-000042...).
func FormatDocumentNumber(series DocumentSeries, n int64) string {
	return fmt.Sprintf("%s-%06d", series, n)
}
