package model

import "time"

type DashboardSummary struct {
	FilesCount  int       `json:"filesCount"`
	TotalSize   int64     `json:"totalSize"`
	JoinedDate  time.Time `json:"joinedDate"`
	RecentFiles []*File   `json:"recentFiles"`
}

type DailyUploads struct {
	Date    string `json:"date"` // YYYY-MM-DD (UTC)
	Uploads int    `json:"uploads"`
	Bytes   int64  `json:"bytes"`
}

// TypeUsage groups files by top level MIME category ("image", "application", ...).
type TypeUsage struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
	Size  int64  `json:"size"`
}

type Analytics struct {
	Days          []DailyUploads `json:"days"` // Oldest first
	ByType        []TypeUsage    `json:"byType"`
	TotalFiles    int            `json:"totalFiles"`
	TotalSize     int64          `json:"totalSize"`
	PeriodUploads int            `json:"periodUploads"`
	PeriodBytes   int64          `json:"periodBytes"`
}
