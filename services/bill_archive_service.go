package services

import (
	"encoding/json"
	"fmt"

	"github.com/sharma-tailors/sharma-tailors-api/billing"
)

// BillArchiveService stores rendered bill documents so a bill can be shared
// or re-fetched later without re-projecting the order. It archives the
// document *value* as JSON; rendering it to paper or PDF is someone else's job.
type BillArchiveService interface {
	// ArchiveBill stores the printable document and returns the storage key
	ArchiveBill(invoiceNumber string, doc billing.PrintableDocument) (string, error)

	// GetBillURL generates a URL for accessing an archived bill
	GetBillURL(key string) (string, error)

	// DeleteBill removes an archived bill from storage
	DeleteBill(key string) error
}

// S3BillArchiveService implements BillArchiveService using AWS S3 for storage
type S3BillArchiveService struct {
	s3Service S3Interface
}

var billArchiveServiceInstance BillArchiveService

// InitBillArchiveService initializes the bill archive service with S3 backend
func InitBillArchiveService(s3Service S3Interface) BillArchiveService {
	billArchiveServiceInstance = &S3BillArchiveService{
		s3Service: s3Service,
	}
	return billArchiveServiceInstance
}

// GetBillArchiveService returns the initialized bill archive service instance
func GetBillArchiveService() BillArchiveService {
	return billArchiveServiceInstance
}

// SetBillArchiveService sets the bill archive service instance (primarily for testing)
func SetBillArchiveService(service BillArchiveService) {
	billArchiveServiceInstance = service
}

// ArchiveBill marshals the document and uploads it under bills/{invoice_number}.json.
// Archiving the same invoice again overwrites the previous snapshot.
func (s *S3BillArchiveService) ArchiveBill(invoiceNumber string, doc billing.PrintableDocument) (string, error) {
	if invoiceNumber == "" {
		return "", fmt.Errorf("invoice number is required to archive a bill")
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal bill document: %w", err)
	}

	key := fmt.Sprintf("bills/%s.json", invoiceNumber)
	if err := s.s3Service.UploadDocument(key, body, "application/json"); err != nil {
		return "", fmt.Errorf("failed to archive bill: %w", err)
	}

	return key, nil
}

// GetBillURL generates a presigned URL for an archived bill
func (s *S3BillArchiveService) GetBillURL(key string) (string, error) {
	if key == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(key)
	if err != nil {
		return "", fmt.Errorf("failed to generate bill URL: %w", err)
	}

	return url, nil
}

// DeleteBill deletes an archived bill
func (s *S3BillArchiveService) DeleteBill(key string) error {
	if key == "" {
		return nil
	}

	if err := s.s3Service.DeleteDocument(key); err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}

	return nil
}
