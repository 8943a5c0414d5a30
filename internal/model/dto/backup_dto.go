package dto

// BackupStatus reports the cloud backup state to the UI.
type BackupStatus struct {
	Provider      string `json:"provider"`
	Authenticated bool   `json:"authenticated"`
	LastBackupAt  string `json:"lastBackupAt,omitempty"`
	LastBackupRef string `json:"lastBackupRef,omitempty"`
}

// BackupRunResult is returned after a completed backup upload.
type BackupRunResult struct {
	Provider string `json:"provider"`
	Ref      string `json:"ref"`  // file ID (drive) or object key (oss)
	Size     int64  `json:"size"` // snapshot size in bytes
}
