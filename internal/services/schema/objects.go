package schema

type Kind string

const (
	KindTable   Kind = "table"
	KindView    Kind = "view"
	KindRoutine Kind = "routine"
	KindTrigger Kind = "trigger"
)

// DerivedObject is a declaratively defined database-side object: a name, the
// statements that remove any previous incarnation, and the statements that
// create the current one. Drop statements use IF EXISTS so reconciling an
// object that was never installed is a no-op.
type DerivedObject struct {
	Kind   Kind
	Name   string
	Drop   []string
	Create []string
}

// Objects returns the full catalog in dependency order: audit tables before
// the triggers that write to them, trigger functions before their triggers.
func Objects() []DerivedObject {
	return []DerivedObject{
		{
			Kind: KindTable,
			Name: "project_status_log",
			Create: []string{`
				CREATE TABLE IF NOT EXISTS project_status_log (
					id SERIAL PRIMARY KEY,
					project_id INTEGER REFERENCES projects(id),
					old_status VARCHAR(20),
					new_status VARCHAR(20),
					changed_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
				`CREATE INDEX IF NOT EXISTS idx_project_status_log_project ON project_status_log (project_id)`,
				`CREATE INDEX IF NOT EXISTS idx_project_status_log_changed ON project_status_log (changed_at)`,
			},
		},
		{
			Kind: KindTable,
			Name: "bid_status_log",
			Create: []string{`
				CREATE TABLE IF NOT EXISTS bid_status_log (
					id SERIAL PRIMARY KEY,
					bid_id INTEGER NOT NULL REFERENCES bids(id),
					old_status VARCHAR(20) NOT NULL,
					new_status VARCHAR(20) NOT NULL,
					changed_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
				`CREATE INDEX IF NOT EXISTS idx_bid_status_log_bid ON bid_status_log (bid_id)`,
				`CREATE INDEX IF NOT EXISTS idx_bid_status_log_changed ON bid_status_log (changed_at)`,
			},
		},
		{
			Kind: KindRoutine,
			Name: "recompute_user_rating",
			Drop: []string{`DROP FUNCTION IF EXISTS recompute_user_rating(INTEGER)`},
			Create: []string{`
				CREATE FUNCTION recompute_user_rating(p_user_id INTEGER)
				RETURNS TABLE(user_id INTEGER, new_rating NUMERIC, review_count BIGINT) AS $$
				DECLARE
					v_avg NUMERIC(3,2);
					v_count BIGINT;
				BEGIN
					SELECT COALESCE(AVG(rating), 0), COUNT(*)
					INTO v_avg, v_count
					FROM reviews
					WHERE reviewed_id = p_user_id;

					UPDATE users SET rating = v_avg WHERE id = p_user_id;

					RETURN QUERY SELECT p_user_id, v_avg::NUMERIC, v_count;
				END;
				$$ LANGUAGE plpgsql`,
			},
		},
		{
			Kind: KindRoutine,
			Name: "project_statistics",
			Drop: []string{`DROP FUNCTION IF EXISTS project_statistics(INTEGER)`},
			Create: []string{`
				CREATE FUNCTION project_statistics(p_project_id INTEGER)
				RETURNS TABLE(
					title VARCHAR,
					budget NUMERIC,
					status VARCHAR,
					project_type VARCHAR,
					client_name VARCHAR,
					freelancer_name VARCHAR,
					total_bids BIGINT,
					avg_bid_amount NUMERIC,
					review_count BIGINT,
					avg_rating NUMERIC
				) AS $$
				BEGIN
					RETURN QUERY
					SELECT p.title, p.budget, p.status, p.project_type,
					       c.name, f.name,
					       COUNT(DISTINCT b.id),
					       COALESCE(AVG(b.amount), 0),
					       COUNT(DISTINCT r.id),
					       COALESCE(AVG(r.rating), 0)
					FROM projects p
					LEFT JOIN users c ON p.client_id = c.id
					LEFT JOIN users f ON p.freelancer_id = f.id
					LEFT JOIN bids b ON p.id = b.project_id
					LEFT JOIN reviews r ON p.id = r.project_id
					WHERE p.id = p_project_id
					GROUP BY p.id, c.name, f.name;
				END;
				$$ LANGUAGE plpgsql`,
			},
		},
		{
			Kind: KindRoutine,
			Name: "client_avg_budget",
			Drop: []string{`DROP FUNCTION IF EXISTS client_avg_budget(INTEGER)`},
			Create: []string{`
				CREATE FUNCTION client_avg_budget(p_client_id INTEGER)
				RETURNS TABLE(client_id INTEGER, avg_budget NUMERIC, project_count BIGINT, total_budget NUMERIC) AS $$
				BEGIN
					RETURN QUERY
					SELECT p_client_id,
					       COALESCE(AVG(p.budget), 0),
					       COUNT(*),
					       COALESCE(SUM(p.budget), 0)
					FROM projects p
					WHERE p.client_id = p_client_id;
				END;
				$$ LANGUAGE plpgsql`,
			},
		},
		{
			Kind: KindRoutine,
			Name: "freelancer_success_rate",
			Drop: []string{`DROP FUNCTION IF EXISTS freelancer_success_rate(INTEGER)`},
			Create: []string{`
				CREATE FUNCTION freelancer_success_rate(p_freelancer_id INTEGER)
				RETURNS NUMERIC AS $$
				DECLARE
					v_total BIGINT;
					v_accepted BIGINT;
					v_rate NUMERIC(5,2) := 0;
				BEGIN
					SELECT COUNT(*) INTO v_total
					FROM bids WHERE freelancer_id = p_freelancer_id;

					SELECT COUNT(*) INTO v_accepted
					FROM bids WHERE freelancer_id = p_freelancer_id AND status = 'accepted';

					IF v_total > 0 THEN
						v_rate := v_accepted::NUMERIC / v_total * 100;
					END IF;

					RETURN v_rate;
				END;
				$$ LANGUAGE plpgsql`,
			},
		},
		{
			Kind: KindView,
			Name: "v_active_projects",
			Drop: []string{`DROP VIEW IF EXISTS v_active_projects`},
			Create: []string{`
				CREATE VIEW v_active_projects AS
				SELECT p.id,
				       p.title,
				       p.description,
				       p.budget,
				       p.project_type,
				       p.status,
				       p.created_at,
				       p.deadline,
				       u.name AS client_name,
				       u.email AS client_email,
				       u.city AS client_city,
				       u.country AS client_country,
				       (SELECT COUNT(*) FROM bids WHERE project_id = p.id) AS bid_count,
				       (SELECT COUNT(*) FROM bids WHERE project_id = p.id AND status = 'pending') AS pending_bids
				FROM projects p
				JOIN users u ON p.client_id = u.id
				WHERE p.status IN ('open', 'in_progress')`,
			},
		},
		{
			Kind: KindView,
			Name: "v_top_freelancers",
			Drop: []string{`DROP VIEW IF EXISTS v_top_freelancers`},
			Create: []string{`
				CREATE VIEW v_top_freelancers AS
				SELECT u.id,
				       u.name,
				       u.email,
				       u.city,
				       u.country,
				       u.hourly_rate,
				       u.rating,
				       u.skills,
				       COUNT(DISTINCT p.id) AS completed_projects,
				       COALESCE(AVG(r.rating), 0) AS avg_review_rating,
				       COUNT(DISTINCT r.id) AS review_count,
				       COUNT(DISTINCT b.id) AS total_bids,
				       COALESCE(SUM(CASE WHEN b.status = 'accepted' THEN 1 ELSE 0 END), 0) AS accepted_bids
				FROM users u
				LEFT JOIN projects p ON u.id = p.freelancer_id AND p.status = 'completed'
				LEFT JOIN reviews r ON u.id = r.reviewed_id
				LEFT JOIN bids b ON u.id = b.freelancer_id
				WHERE u.role = 'freelancer' AND u.status = 'active'
				GROUP BY u.id
				HAVING u.rating >= 3.0
				ORDER BY u.rating DESC, completed_projects DESC`,
			},
		},
		{
			Kind: KindView,
			Name: "v_client_stats",
			Drop: []string{`DROP VIEW IF EXISTS v_client_stats`},
			Create: []string{`
				CREATE VIEW v_client_stats AS
				SELECT u.id,
				       u.name,
				       u.email,
				       u.city,
				       u.country,
				       u.rating,
				       COUNT(DISTINCT p.id) AS total_projects,
				       COALESCE(SUM(p.budget), 0) AS total_budget,
				       COALESCE(AVG(p.budget), 0) AS avg_project_budget,
				       COUNT(DISTINCT CASE WHEN p.status = 'completed' THEN p.id END) AS completed_projects,
				       COUNT(DISTINCT r.id) AS reviews_given
				FROM users u
				LEFT JOIN projects p ON u.id = p.client_id
				LEFT JOIN reviews r ON u.id = r.reviewer_id
				WHERE u.role = 'client'
				GROUP BY u.id
				ORDER BY total_budget DESC`,
			},
		},
		{
			Kind: KindTrigger,
			Name: "trg_projects_count_insert",
			Drop: []string{`DROP TRIGGER IF EXISTS trg_projects_count_insert ON projects`},
			Create: []string{`
				CREATE OR REPLACE FUNCTION trg_fn_projects_count_insert() RETURNS trigger AS $$
				BEGIN
					UPDATE users SET total_projects = total_projects + 1 WHERE id = NEW.client_id;
					RETURN NEW;
				END;
				$$ LANGUAGE plpgsql`,
				`CREATE TRIGGER trg_projects_count_insert
				AFTER INSERT ON projects
				FOR EACH ROW EXECUTE FUNCTION trg_fn_projects_count_insert()`,
			},
		},
		{
			Kind: KindTrigger,
			Name: "trg_projects_status_log",
			Drop: []string{`DROP TRIGGER IF EXISTS trg_projects_status_log ON projects`},
			Create: []string{`
				CREATE OR REPLACE FUNCTION trg_fn_projects_status_log() RETURNS trigger AS $$
				BEGIN
					IF OLD.status IS DISTINCT FROM NEW.status THEN
						INSERT INTO project_status_log (project_id, old_status, new_status)
						VALUES (NEW.id, OLD.status, NEW.status);
					END IF;
					RETURN NEW;
				END;
				$$ LANGUAGE plpgsql`,
				`CREATE TRIGGER trg_projects_status_log
				AFTER UPDATE ON projects
				FOR EACH ROW EXECUTE FUNCTION trg_fn_projects_status_log()`,
			},
		},
		{
			Kind: KindTrigger,
			Name: "trg_bids_status_log",
			Drop: []string{`DROP TRIGGER IF EXISTS trg_bids_status_log ON bids`},
			Create: []string{`
				CREATE OR REPLACE FUNCTION trg_fn_bids_status_log() RETURNS trigger AS $$
				BEGIN
					IF OLD.status IS DISTINCT FROM NEW.status THEN
						INSERT INTO bid_status_log (bid_id, old_status, new_status)
						VALUES (NEW.id, OLD.status, NEW.status);
					END IF;
					RETURN NEW;
				END;
				$$ LANGUAGE plpgsql`,
				`CREATE TRIGGER trg_bids_status_log
				AFTER UPDATE ON bids
				FOR EACH ROW EXECUTE FUNCTION trg_fn_bids_status_log()`,
			},
		},
	}
}
