package ledger

const schema = `
CREATE TABLE IF NOT EXISTS equity_curve (
	date TEXT PRIMARY KEY,
	equity REAL NOT NULL,
	pnl REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS trade_entries (
	date TEXT PRIMARY KEY,
	pnl REAL NOT NULL,
	entry_price REAL NOT NULL DEFAULT 0,
	stop_loss REAL NOT NULL DEFAULT 0,
	take_profit REAL NOT NULL DEFAULT 0,
	risk_reward REAL NOT NULL DEFAULT 0,
	notes TEXT NOT NULL DEFAULT '',
	chart_image TEXT NOT NULL DEFAULT ''
);
`
