package repository

import "strings"

// schemaSQL is written once; column types are filled in per dialect.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
    id              {{pk}},
    email           TEXT NOT NULL UNIQUE,
    username        TEXT NOT NULL UNIQUE,
    password_hash   TEXT NOT NULL,
    full_name       TEXT NOT NULL DEFAULT '',
    is_active       BOOLEAN NOT NULL DEFAULT TRUE,
    is_teacher      BOOLEAN NOT NULL DEFAULT FALSE,
    created_at      {{ts}} NOT NULL
);

CREATE TABLE IF NOT EXISTS classrooms (
    id              {{pk}},
    name            TEXT NOT NULL,
    description     TEXT NOT NULL DEFAULT '',
    invite_code     TEXT NOT NULL UNIQUE,
    teacher_id      BIGINT NOT NULL REFERENCES users(id),
    is_active       BOOLEAN NOT NULL DEFAULT TRUE,
    created_at      {{ts}} NOT NULL
);

CREATE TABLE IF NOT EXISTS classroom_members (
    classroom_id    BIGINT NOT NULL REFERENCES classrooms(id) ON DELETE CASCADE,
    user_id         BIGINT NOT NULL REFERENCES users(id),
    PRIMARY KEY (classroom_id, user_id)
);

CREATE TABLE IF NOT EXISTS careers (
    id                    {{pk}},
    title                 TEXT NOT NULL,
    description           TEXT NOT NULL DEFAULT '',
    education_required    TEXT NOT NULL DEFAULT '',
    requires_student_loan BOOLEAN NOT NULL DEFAULT FALSE,
    student_loan_amount   {{money}} NOT NULL DEFAULT 0,
    base_salary_min       {{money}} NOT NULL,
    base_salary_max       {{money}} NOT NULL,
    industry              TEXT NOT NULL DEFAULT '',
    created_at            {{ts}} NOT NULL
);

CREATE TABLE IF NOT EXISTS career_applications (
    id              {{pk}},
    user_id         BIGINT NOT NULL REFERENCES users(id),
    career_id       BIGINT NOT NULL REFERENCES careers(id),
    cover_letter    TEXT NOT NULL DEFAULT '',
    status          TEXT NOT NULL DEFAULT 'pending',
    created_at      {{ts}} NOT NULL,
    UNIQUE (user_id, career_id)
);

CREATE TABLE IF NOT EXISTS financial_profiles (
    id                          {{pk}},
    user_id                     BIGINT NOT NULL UNIQUE REFERENCES users(id),
    career_id                   BIGINT REFERENCES careers(id),
    current_salary              {{money}} NOT NULL DEFAULT 0,
    weekly_income               {{money}} NOT NULL DEFAULT 0,
    net_weekly_income           {{money}} NOT NULL DEFAULT 0,
    student_loan_balance        {{money}} NOT NULL DEFAULT 0,
    student_loan_weekly_payment {{money}} NOT NULL DEFAULT 0,
    savings_balance             {{money}} NOT NULL DEFAULT 0,
    emergency_fund              {{money}} NOT NULL DEFAULT 0,
    housing_type                TEXT NOT NULL DEFAULT 'renting',
    housing_weekly_cost         {{money}} NOT NULL DEFAULT 0,
    property_value              {{money}} NOT NULL DEFAULT 0,
    weekly_expenses             {{money}} NOT NULL DEFAULT 0,
    weeks_played                INTEGER NOT NULL DEFAULT 0,
    total_tax_paid              {{money}} NOT NULL DEFAULT 0,
    created_at                  {{ts}} NOT NULL,
    updated_at                  {{ts}} NOT NULL
);

CREATE TABLE IF NOT EXISTS stocks (
    id                   {{pk}},
    symbol               TEXT NOT NULL UNIQUE,
    company_name         TEXT NOT NULL,
    current_price        {{money}} NOT NULL,
    daily_change         {{money}} NOT NULL DEFAULT 0,
    daily_change_percent {{money}} NOT NULL DEFAULT 0,
    market_cap           {{money}} NOT NULL DEFAULT 0,
    dividend_yield       {{money}} NOT NULL DEFAULT 0,
    last_updated         {{ts}} NOT NULL
);

CREATE TABLE IF NOT EXISTS portfolios (
    id              {{pk}},
    user_id         BIGINT NOT NULL REFERENCES users(id),
    name            TEXT NOT NULL DEFAULT 'My Portfolio',
    cash_balance    {{money}} NOT NULL DEFAULT 1000,
    total_invested  {{money}} NOT NULL DEFAULT 0,
    total_value     {{money}} NOT NULL DEFAULT 0,
    created_at      {{ts}} NOT NULL,
    updated_at      {{ts}} NOT NULL
);

CREATE TABLE IF NOT EXISTS stock_holdings (
    id              {{pk}},
    portfolio_id    BIGINT NOT NULL REFERENCES portfolios(id),
    stock_id        BIGINT NOT NULL REFERENCES stocks(id),
    shares          {{money}} NOT NULL,
    average_price   {{money}} NOT NULL,
    current_value   {{money}} NOT NULL DEFAULT 0,
    created_at      {{ts}} NOT NULL,
    updated_at      {{ts}} NOT NULL,
    UNIQUE (portfolio_id, stock_id)
);

CREATE TABLE IF NOT EXISTS transactions (
    id               {{pk}},
    user_id          BIGINT NOT NULL REFERENCES users(id),
    portfolio_id     BIGINT REFERENCES portfolios(id),
    stock_id         BIGINT REFERENCES stocks(id),
    transaction_type TEXT NOT NULL,
    amount           {{money}} NOT NULL,
    description      TEXT NOT NULL DEFAULT '',
    category         TEXT NOT NULL DEFAULT '',
    shares           {{money}},
    price_per_share  {{money}},
    created_at       {{ts}} NOT NULL
);

CREATE TABLE IF NOT EXISTS financial_events (
    id              {{pk}},
    title           TEXT NOT NULL,
    description     TEXT NOT NULL DEFAULT '',
    event_type      TEXT NOT NULL,
    amount_min      {{money}} NOT NULL DEFAULT 0,
    amount_max      {{money}} NOT NULL DEFAULT 0,
    probability     DOUBLE PRECISION NOT NULL DEFAULT 0.1,
    is_active       BOOLEAN NOT NULL DEFAULT TRUE,
    created_at      {{ts}} NOT NULL
);

CREATE TABLE IF NOT EXISTS bank_accounts (
    id                {{pk}},
    user_id           BIGINT NOT NULL REFERENCES users(id),
    account_number    TEXT NOT NULL UNIQUE,
    account_type      TEXT NOT NULL,
    account_name      TEXT NOT NULL,
    bank_name         TEXT NOT NULL,
    current_balance   {{money}} NOT NULL DEFAULT 0,
    available_balance {{money}} NOT NULL DEFAULT 0,
    interest_rate     {{money}} NOT NULL DEFAULT 0,
    minimum_balance   {{money}} NOT NULL DEFAULT 0,
    is_primary        BOOLEAN NOT NULL DEFAULT FALSE,
    created_at        {{ts}} NOT NULL
);

CREATE TABLE IF NOT EXISTS bank_transactions (
    id               {{pk}},
    account_id       BIGINT NOT NULL REFERENCES bank_accounts(id),
    transaction_type TEXT NOT NULL,
    amount           {{money}} NOT NULL,
    description      TEXT NOT NULL DEFAULT '',
    category         TEXT NOT NULL DEFAULT '',
    status           TEXT NOT NULL DEFAULT 'posted',
    balance_after    {{money}} NOT NULL,
    transaction_date {{ts}} NOT NULL
);

CREATE TABLE IF NOT EXISTS loans (
    id              {{pk}},
    user_id         BIGINT NOT NULL REFERENCES users(id),
    loan_type       TEXT NOT NULL,
    principal       {{money}} NOT NULL,
    interest_rate   {{money}} NOT NULL,
    term_months     INTEGER NOT NULL DEFAULT 0,
    current_balance {{money}} NOT NULL,
    minimum_payment {{money}} NOT NULL DEFAULT 0,
    credit_limit    {{money}} NOT NULL DEFAULT 0,
    property_value  {{money}} NOT NULL DEFAULT 0,
    status          TEXT NOT NULL DEFAULT 'active',
    next_due_date   {{ts}} NOT NULL,
    created_at      {{ts}} NOT NULL
);

CREATE TABLE IF NOT EXISTS loan_payments (
    id                {{pk}},
    loan_id           BIGINT NOT NULL REFERENCES loans(id),
    amount            {{money}} NOT NULL,
    principal_portion {{money}} NOT NULL,
    interest_portion  {{money}} NOT NULL,
    balance_after     {{money}} NOT NULL,
    on_time           BOOLEAN NOT NULL DEFAULT TRUE,
    paid_at           {{ts}} NOT NULL
);

CREATE TABLE IF NOT EXISTS credit_scores (
    id                 {{pk}},
    user_id            BIGINT NOT NULL REFERENCES users(id),
    score              INTEGER NOT NULL,
    score_range        TEXT NOT NULL DEFAULT 'FICO',
    credit_utilization {{money}} NOT NULL DEFAULT 0,
    total_accounts     INTEGER NOT NULL DEFAULT 0,
    open_accounts      INTEGER NOT NULL DEFAULT 0,
    score_date         {{ts}} NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_holdings_stock ON stock_holdings(stock_id);
CREATE INDEX IF NOT EXISTS idx_bank_transactions_account ON bank_transactions(account_id, transaction_date);
CREATE INDEX IF NOT EXISTS idx_loans_user ON loans(user_id);
CREATE INDEX IF NOT EXISTS idx_credit_scores_user ON credit_scores(user_id, score_date);
`

var dialectTypes = map[Dialect]*strings.Replacer{
	Postgres: strings.NewReplacer(
		"{{pk}}", "BIGSERIAL PRIMARY KEY",
		"{{money}}", "NUMERIC",
		"{{ts}}", "TIMESTAMPTZ",
	),
	SQLite: strings.NewReplacer(
		"{{pk}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
		"{{money}}", "REAL",
		"{{ts}}", "TIMESTAMP",
	),
}

func schemaFor(d Dialect) string {
	return dialectTypes[d].Replace(schemaSQL)
}
