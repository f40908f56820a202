package db

// ExpectedTables describes the tables the service depends on.
// migrations/schema.sql is the authoritative DDL; this list is validated
// against the live database at startup.
func ExpectedTables() []TableSchema {
	return []TableSchema{
		{
			Name: "users",
			Columns: []ColumnType{
				{Name: "id", DataType: "bigint"},
				{Name: "email", DataType: "varchar"},
				{Name: "password", DataType: "varchar"},
				{Name: "role", DataType: "enum"},
				{Name: "created_at", DataType: "timestamp"},
				{Name: "updated_at", DataType: "timestamp"},
			},
		},
		{
			Name: "tests",
			Columns: []ColumnType{
				{Name: "id", DataType: "bigint"},
				{Name: "title", DataType: "varchar"},
				{Name: "duration_minutes", DataType: "int"},
				{Name: "total_marks", DataType: "decimal"},
				{Name: "is_published", DataType: "tinyint"},
				{Name: "created_at", DataType: "timestamp"},
				{Name: "updated_at", DataType: "timestamp"},
			},
		},
		{
			Name: "questions",
			Columns: []ColumnType{
				{Name: "id", DataType: "bigint"},
				{Name: "test_id", DataType: "bigint"},
				{Name: "question_type", DataType: "varchar"},
				{Name: "image_url", DataType: "varchar", Nullable: true},
				{Name: "options", DataType: "json"},
				{Name: "correct_answer", DataType: "varchar"},
				{Name: "marks", DataType: "decimal"},
				{Name: "negative_marks", DataType: "decimal"},
				{Name: "created_at", DataType: "timestamp"},
				{Name: "updated_at", DataType: "timestamp"},
			},
		},
		{
			Name: "submissions",
			Columns: []ColumnType{
				{Name: "id", DataType: "bigint"},
				{Name: "test_id", DataType: "bigint"},
				{Name: "student_id", DataType: "bigint"},
				{Name: "score", DataType: "decimal"},
				{Name: "time_taken_seconds", DataType: "int"},
				{Name: "created_at", DataType: "timestamp"},
			},
		},
		{
			Name: "responses",
			Columns: []ColumnType{
				{Name: "id", DataType: "bigint"},
				{Name: "submission_id", DataType: "bigint"},
				{Name: "question_id", DataType: "bigint"},
				{Name: "selected_option", DataType: "varchar"},
				{Name: "is_correct", DataType: "tinyint"},
				{Name: "time_spent_seconds", DataType: "int"},
				{Name: "created_at", DataType: "timestamp"},
			},
		},
	}
}
