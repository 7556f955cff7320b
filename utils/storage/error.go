package storage

// StorageError struct
type StorageError struct {
	Message string
	Err     error
}

// Error func
func (se *StorageError) Error() string {
	return se.Err.Error()
}
