package ingestion

// schema holds the reference snapshot DDL. Primary keys mirror the
// loader's duplicate-detection keys so a snapshot produced by an older
// build still rejects rows the loader would warn about.
const schema = `
CREATE TABLE IF NOT EXISTS ref_salaries (
	country        TEXT NOT NULL,
	cadre_level    INTEGER NOT NULL,
	annual_salary  REAL NOT NULL,
	currency       TEXT NOT NULL,
	year           INTEGER NOT NULL,
	PRIMARY KEY (country, cadre_level)
);

CREATE TABLE IF NOT EXISTS ref_per_diems (
	country          TEXT NOT NULL PRIMARY KEY,
	dsa_national     REAL NOT NULL,
	dsa_upper        REAL NOT NULL,
	dsa_lower        REAL NOT NULL,
	currency         TEXT NOT NULL,
	year             INTEGER NOT NULL,
	local_proportion REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS ref_transport (
	vehicle_model             TEXT NOT NULL PRIMARY KEY,
	operating_cost_per_km     REAL NOT NULL,
	consumption_litres_per_km REAL NOT NULL,
	currency                  TEXT NOT NULL,
	year                      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS ref_supplies (
	item     TEXT NOT NULL PRIMARY KEY,
	price    REAL NOT NULL,
	currency TEXT NOT NULL,
	year     INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS ref_distances (
	country  TEXT NOT NULL PRIMARY KEY,
	ddist10  REAL NOT NULL,
	ddist20  REAL NOT NULL,
	ddist30  REAL NOT NULL,
	ddist40  REAL NOT NULL,
	ddist50  REAL NOT NULL,
	ddist60  REAL NOT NULL,
	ddist70  REAL NOT NULL,
	ddist80  REAL NOT NULL,
	ddist90  REAL NOT NULL,
	ddist95  REAL,
	ddist100 REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS ref_divisions (
	country              TEXT NOT NULL PRIMARY KEY,
	provincial_divisions INTEGER NOT NULL,
	district_divisions   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS ref_facilities (
	country              TEXT NOT NULL PRIMARY KEY,
	regional_hospitals   INTEGER NOT NULL,
	provincial_hospitals INTEGER NOT NULL,
	district_hospitals   INTEGER NOT NULL,
	health_centres       INTEGER NOT NULL,
	health_posts         INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS ref_economic_series (
	country TEXT NOT NULL,
	series  TEXT NOT NULL,
	year    INTEGER NOT NULL,
	value   REAL NOT NULL,
	PRIMARY KEY (country, series, year)
);

CREATE TABLE IF NOT EXISTS ref_population (
	country         TEXT NOT NULL,
	year            INTEGER NOT NULL,
	variant         TEXT NOT NULL,
	value_thousands REAL NOT NULL,
	PRIMARY KEY (country, year, variant)
);
`
