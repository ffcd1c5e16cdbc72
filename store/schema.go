package store

// Schema keeps one row per (symbol, timeframe, open time). Duplicate inserts
// are ignored: keep-first.
const Schema = `
CREATE TABLE IF NOT EXISTS candles (
	symbol     TEXT    NOT NULL,
	timeframe  TEXT    NOT NULL,
	time       INTEGER NOT NULL,
	open       REAL    NOT NULL,
	high       REAL    NOT NULL,
	low        REAL    NOT NULL,
	close      REAL    NOT NULL,
	volume     REAL    NOT NULL,
	PRIMARY KEY (symbol, timeframe, time)
);

CREATE INDEX IF NOT EXISTS idx_candles_lookup ON candles (symbol, timeframe, time DESC);
`
