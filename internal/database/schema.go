package database

const schema = `
CREATE TABLE IF NOT EXISTS deals (
	id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	company_name     TEXT NOT NULL,
	revenue          NUMERIC(15, 2) NOT NULL,
	sde              NUMERIC(15, 2),
	valuation_min    NUMERIC(15, 2),
	valuation_max    NUMERIC(15, 2),
	sde_multiple     NUMERIC(5, 2),
	revenue_multiple NUMERIC(5, 2),
	commission       NUMERIC(5, 2),
	stage            TEXT NOT NULL DEFAULT 'onboarding'
		CHECK (stage IN ('onboarding', 'valuation', 'buyer_matching', 'due_diligence', 'sold')),
	priority         TEXT NOT NULL DEFAULT 'medium',
	description      TEXT,
	notes            TEXT NOT NULL DEFAULT '',
	next_step_days   INTEGER,
	touches          INTEGER NOT NULL DEFAULT 0,
	age_in_stage     INTEGER NOT NULL DEFAULT 0,
	health_score     INTEGER NOT NULL DEFAULT 85,
	owner            TEXT NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at       TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_deals_stage ON deals(stage);

CREATE TABLE IF NOT EXISTS buying_parties (
	id                     UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name                   TEXT NOT NULL,
	target_acquisition_min INTEGER,
	target_acquisition_max INTEGER,
	budget_min             NUMERIC(15, 2),
	budget_max             NUMERIC(15, 2),
	timeline               TEXT,
	status                 TEXT NOT NULL DEFAULT 'evaluating',
	notes                  TEXT NOT NULL DEFAULT '',
	target_industries      JSONB NOT NULL DEFAULT '[]',
	operational            BOOLEAN NOT NULL DEFAULT FALSE,
	created_at             TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS contacts (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name        TEXT NOT NULL,
	role        TEXT NOT NULL,
	email       TEXT,
	phone       TEXT,
	entity_id   UUID NOT NULL,
	entity_type TEXT NOT NULL CHECK (entity_type IN ('deal', 'buying_party'))
);

CREATE INDEX IF NOT EXISTS idx_contacts_entity ON contacts(entity_type, entity_id);

CREATE TABLE IF NOT EXISTS deal_buyer_matches (
	id                 UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	deal_id            UUID NOT NULL REFERENCES deals(id),
	buying_party_id    UUID NOT NULL REFERENCES buying_parties(id),
	target_acquisition INTEGER,
	budget             NUMERIC(15, 2),
	status             TEXT NOT NULL DEFAULT 'interested',
	stage              TEXT NOT NULL DEFAULT 'new',
	created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (deal_id, buying_party_id)
);

CREATE TABLE IF NOT EXISTS activities (
	id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	deal_id         UUID REFERENCES deals(id),
	buying_party_id UUID REFERENCES buying_parties(id),
	type            TEXT NOT NULL,
	title           TEXT NOT NULL,
	description     TEXT,
	status          TEXT NOT NULL DEFAULT 'pending',
	assigned_to     TEXT,
	due_date        TIMESTAMPTZ,
	completed_at    TIMESTAMPTZ,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_activities_deal ON activities(deal_id);
CREATE INDEX IF NOT EXISTS idx_activities_party ON activities(buying_party_id);

CREATE TABLE IF NOT EXISTS documents (
	id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	deal_id         UUID REFERENCES deals(id),
	buying_party_id UUID REFERENCES buying_parties(id),
	name            TEXT NOT NULL,
	status          TEXT NOT NULL DEFAULT 'draft',
	url             TEXT,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CHECK ((deal_id IS NULL) <> (buying_party_id IS NULL))
);

CREATE INDEX IF NOT EXISTS idx_documents_deal ON documents(deal_id);

CREATE TABLE IF NOT EXISTS checklists (
	owner_type TEXT NOT NULL CHECK (owner_type IN ('deal', 'match')),
	owner_id   UUID NOT NULL,
	items      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (owner_type, owner_id)
);
`
