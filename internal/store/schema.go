package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
    file_path            TEXT PRIMARY KEY,
    project_name         TEXT,
    start_date           TEXT,
    end_date             TEXT,
    format               TEXT NOT NULL,
    body                 TEXT NOT NULL,
    parsed_at            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS file_tracker (
    file_path            TEXT PRIMARY KEY,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_start ON documents(start_date);
`
