package services

import (
	"fmt"
	"sync"
)

// MockS3Service is a mock implementation of S3Interface for testing
type MockS3Service struct {
	documents map[string][]byte // map of S3 key to document content
	mu        sync.RWMutex
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		documents: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global S3 service instance for testing
func (m *MockS3Service) SetAsMockForTesting() {
	SetS3Service(m)
}

// UploadDocument simulates uploading a document to S3
func (m *MockS3Service) UploadDocument(key string, body []byte, contentType string) error {
	content := make([]byte, len(body))
	copy(content, body)

	m.mu.Lock()
	m.documents[key] = content
	m.mu.Unlock()

	return nil
}

// GetPresignedURL simulates generating a presigned URL
func (m *MockS3Service) GetPresignedURL(key string) (string, error) {
	if key == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.documents[key]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("document not found in mock S3: %s", key)
	}

	return fmt.Sprintf("https://test-bucket.s3.ap-south-1.amazonaws.com/%s?mock=true", key), nil
}

// DeleteDocument simulates deleting a document from S3
func (m *MockS3Service) DeleteDocument(key string) error {
	if key == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.documents, key)
	m.mu.Unlock()

	return nil
}

// GetDocument returns an uploaded document's content (for testing assertions)
func (m *MockS3Service) GetDocument(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, exists := m.documents[key]
	return content, exists
}

// DocumentExists checks if a document exists in mock storage
func (m *MockS3Service) DocumentExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.documents[key]
	return exists
}

// Clear removes all documents from mock storage
func (m *MockS3Service) Clear() {
	m.mu.Lock()
	m.documents = make(map[string][]byte)
	m.mu.Unlock()
}
