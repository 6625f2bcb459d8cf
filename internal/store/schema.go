package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS years (
    year                 INTEGER PRIMARY KEY,
    deficit              REAL NOT NULL,
    debt_ratio           REAL NOT NULL,
    total_revenues       REAL NOT NULL,
    total_expenditures   REAL NOT NULL,
    tax_burden           REAL NOT NULL,
    health_score         INTEGER NOT NULL,
    health_label         TEXT NOT NULL,
    avg_efficiency       REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS sections (
    year                 INTEGER NOT NULL REFERENCES years(year) ON DELETE CASCADE,
    section_id           TEXT NOT NULL,
    position             INTEGER NOT NULL,
    title                TEXT NOT NULL,
    icon                 TEXT,
    color                TEXT,
    total_amount         REAL NOT NULL,
    efficiency           REAL NOT NULL,
    oecd_average         REAL NOT NULL,
    description          TEXT,
    PRIMARY KEY (year, section_id)
);

CREATE TABLE IF NOT EXISTS items (
    year                 INTEGER NOT NULL,
    section_id           TEXT NOT NULL,
    item_id              TEXT NOT NULL,
    position             INTEGER NOT NULL,
    label                TEXT NOT NULL,
    amount               REAL NOT NULL,
    description          TEXT,
    trend                REAL,
    PRIMARY KEY (year, section_id, item_id),
    FOREIGN KEY (year, section_id) REFERENCES sections(year, section_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS countries (
    country_id           TEXT PRIMARY KEY,
    position             INTEGER NOT NULL,
    name                 TEXT NOT NULL,
    flag                 TEXT,
    tax_burden           REAL NOT NULL,
    debt_ratio           REAL NOT NULL,
    deficit              REAL NOT NULL,
    public_spending_pct  REAL NOT NULL,
    service_quality      REAL NOT NULL,
    tax_to_service       REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS benchmarks (
    country_id           TEXT NOT NULL REFERENCES countries(country_id) ON DELETE CASCADE,
    section_id           TEXT NOT NULL,
    score                REAL NOT NULL,
    PRIMARY KEY (country_id, section_id)
);

CREATE INDEX IF NOT EXISTS idx_sections_id ON sections(section_id);
`
