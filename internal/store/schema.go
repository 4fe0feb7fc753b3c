package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS exports (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at  TEXT NOT NULL,
    month       TEXT NOT NULL,
    format      TEXT NOT NULL,
    path        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_exports_created ON exports(created_at);
`
