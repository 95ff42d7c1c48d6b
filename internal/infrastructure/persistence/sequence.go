package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// DocumentSequence backs gap-free per-year numbering for quotations, invoices
// and purchase orders. One row per (doc_type, year).
type DocumentSequence struct {
	DocType string `gorm:"type:varchar(20);primaryKey"`
	Year    int    `gorm:"primaryKey"`
	Counter int64  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DocumentSequence) TableName() string {
	return "document_sequences"
}

// nextDocumentNumber atomically allocates the next counter for a document
// type and year and formats it as PREFIX-YEAR-NNN. The upsert-and-return is a
// single statement, so concurrent callers can never observe the same counter.
func nextDocumentNumber(ctx context.Context, db *gorm.DB, docType, prefix string, year, width int) (string, error) {
	var counter int64
	err := db.WithContext(ctx).Raw(
		`INSERT INTO document_sequences (doc_type, year, counter) VALUES (?, ?, 1)
		 ON CONFLICT (doc_type, year) DO UPDATE SET counter = document_sequences.counter + 1
		 RETURNING counter`,
		docType, year,
	).Scan(&counter).Error
	if err != nil {
		return "", fmt.Errorf("failed to allocate %s number: %w", docType, err)
	}
	return fmt.Sprintf("%s-%d-%0*d", prefix, year, width, counter), nil
}
