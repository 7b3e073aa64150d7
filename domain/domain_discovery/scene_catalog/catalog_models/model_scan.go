package catalog_models

import "time"

// ScanSummary 一次媒体库扫描的结果统计
type ScanSummary struct {
	Scanned  int `json:"scanned"`  // 命中的候选文件数
	Ingested int `json:"ingested"` // 成功入库数
	Skipped  int `json:"skipped"`  // 非音频或无法识别的文件数
	Failed   int `json:"failed"`   // 标签解析或写库失败数

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
