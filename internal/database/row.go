package database

// ScanRows calls scan once per row of rows, passing the current row.
// It stops at the first scan error and always closes rows; callers do not
// need to call Close().
func ScanRows(rows Rows, scan func(Row) error) error {
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
