package store

// schema is portable across the postgres and sqlite drivers. Cascades are
// performed explicitly by the delete operations inside one transaction, so
// no ON DELETE CASCADE clauses appear here.
const schema = `
CREATE TABLE IF NOT EXISTS departments (
    internal_id   TEXT PRIMARY KEY,
    department_id INTEGER NOT NULL UNIQUE,
    name          TEXT NOT NULL,
    rank          INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS aisles (
    internal_id   TEXT PRIMARY KEY,
    aisle_id      INTEGER NOT NULL UNIQUE,
    name          TEXT NOT NULL,
    rank          INTEGER NOT NULL,
    department_id INTEGER NOT NULL REFERENCES departments (department_id)
);

CREATE TABLE IF NOT EXISTS products (
    internal_id TEXT PRIMARY KEY,
    product_id  INTEGER NOT NULL UNIQUE,
    name        TEXT NOT NULL UNIQUE,
    rank        INTEGER NOT NULL,
    size        TEXT NOT NULL DEFAULT '',
    image_src   TEXT NOT NULL DEFAULT '',
    image_alt   TEXT NOT NULL DEFAULT '',
    price       TEXT NOT NULL DEFAULT '',
    price_per   TEXT NOT NULL DEFAULT '',
    affix       TEXT NOT NULL DEFAULT '',
    aisle_id    INTEGER NOT NULL REFERENCES aisles (aisle_id)
);

CREATE TABLE IF NOT EXISTS sections (
    section_type      TEXT NOT NULL,
    parent_product_id INTEGER NOT NULL REFERENCES products (product_id),
    child_product_id  INTEGER NOT NULL REFERENCES products (product_id),
    PRIMARY KEY (section_type, parent_product_id, child_product_id)
);

CREATE INDEX IF NOT EXISTS idx_aisles_department_id ON aisles (department_id);
CREATE INDEX IF NOT EXISTS idx_products_aisle_id ON products (aisle_id);
CREATE INDEX IF NOT EXISTS idx_sections_child ON sections (child_product_id);
`
