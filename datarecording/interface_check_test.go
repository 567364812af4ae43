package datarecording

// Both writers must satisfy the DataRecorder interface.
var _ DataRecorder = (*ClickHouseRecorder)(nil)
var _ DataRecorder = (*sqliteWriter)(nil)
