package store

import "context"

// ddlStatements creates the persistent tables. Each statement is
// idempotent (CREATE TABLE IF NOT EXISTS) so ensureSchema can run
// unconditionally against a fresh or existing database.
var ddlStatements = []string{
	`CREATE TABLE IF NOT EXISTS field (
		field_id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		kind VARCHAR(32) NOT NULL,
		indexed BOOLEAN NOT NULL DEFAULT TRUE,
		stored BOOLEAN NOT NULL DEFAULT TRUE,
		frame_size INT NOT NULL DEFAULT 2,
		analyzer VARCHAR(64) NOT NULL DEFAULT 'default'
	)`,
	`CREATE TABLE IF NOT EXISTS vocabulary (
		term_id INT AUTO_INCREMENT PRIMARY KEY,
		term VARCHAR(512) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS attribute (
		attribute_id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS document (
		document_id INT AUTO_INCREMENT PRIMARY KEY,
		deleted BOOLEAN NOT NULL DEFAULT FALSE,
		added_revision INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS document_data (
		document_id INT NOT NULL,
		field_id INT NOT NULL,
		value TEXT,
		PRIMARY KEY (document_id, field_id),
		CONSTRAINT fk_docdata_document FOREIGN KEY (document_id) REFERENCES document(document_id) ON DELETE CASCADE,
		CONSTRAINT fk_docdata_field FOREIGN KEY (field_id) REFERENCES field(field_id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS frame (
		frame_id INT AUTO_INCREMENT PRIMARY KEY,
		document_id INT NOT NULL,
		field_id INT NOT NULL,
		sequence_in_field INT NOT NULL,
		text TEXT NOT NULL,
		CONSTRAINT fk_frame_document FOREIGN KEY (document_id) REFERENCES document(document_id) ON DELETE CASCADE,
		CONSTRAINT fk_frame_field FOREIGN KEY (field_id) REFERENCES field(field_id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS term_posting (
		term_id INT NOT NULL,
		frame_id INT NOT NULL,
		frequency INT NOT NULL,
		positions TEXT NOT NULL,
		PRIMARY KEY (term_id, frame_id),
		CONSTRAINT fk_tp_term FOREIGN KEY (term_id) REFERENCES vocabulary(term_id) ON DELETE CASCADE,
		CONSTRAINT fk_tp_frame FOREIGN KEY (frame_id) REFERENCES frame(frame_id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS frame_posting (
		frame_id INT NOT NULL,
		term_id INT NOT NULL,
		frequency INT NOT NULL,
		positions TEXT NOT NULL,
		PRIMARY KEY (frame_id, term_id),
		CONSTRAINT fk_fp_frame FOREIGN KEY (frame_id) REFERENCES frame(frame_id) ON DELETE CASCADE,
		CONSTRAINT fk_fp_term FOREIGN KEY (term_id) REFERENCES vocabulary(term_id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS attribute_frame_posting (
		attribute_id INT NOT NULL,
		frame_id INT NOT NULL,
		value VARCHAR(512) NOT NULL,
		PRIMARY KEY (attribute_id, frame_id),
		CONSTRAINT fk_afp_attribute FOREIGN KEY (attribute_id) REFERENCES attribute(attribute_id) ON DELETE CASCADE,
		CONSTRAINT fk_afp_frame FOREIGN KEY (frame_id) REFERENCES frame(frame_id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS frame_attribute_posting (
		frame_id INT NOT NULL,
		attribute_id INT NOT NULL,
		value VARCHAR(512) NOT NULL,
		PRIMARY KEY (frame_id, attribute_id),
		CONSTRAINT fk_fap_frame FOREIGN KEY (frame_id) REFERENCES frame(frame_id) ON DELETE CASCADE,
		CONSTRAINT fk_fap_attribute FOREIGN KEY (attribute_id) REFERENCES attribute(attribute_id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS term_statistics (
		term_id INT PRIMARY KEY,
		frames_occurring_in INT NOT NULL DEFAULT 0,
		total_occurrences INT NOT NULL DEFAULT 0,
		CONSTRAINT fk_termstat_term FOREIGN KEY (term_id) REFERENCES vocabulary(term_id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS field_statistics (
		field_id INT PRIMARY KEY,
		frame_count INT NOT NULL DEFAULT 0,
		CONSTRAINT fk_fieldstat_field FOREIGN KEY (field_id) REFERENCES field(field_id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS plugin_registry (
		plugin_id INT AUTO_INCREMENT PRIMARY KEY,
		plugin_type VARCHAR(128) NOT NULL,
		settings TEXT NOT NULL,
		UNIQUE KEY uq_plugin_identity (plugin_type, settings(255))
	)`,
	`CREATE TABLE IF NOT EXISTS plugin_data (
		plugin_id INT NOT NULL,
		data_key VARCHAR(512) NOT NULL,
		data_value TEXT,
		PRIMARY KEY (plugin_id, data_key),
		CONSTRAINT fk_plugindata_plugin FOREIGN KEY (plugin_id) REFERENCES plugin_registry(plugin_id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS index_revision (
		revision_id INT AUTO_INCREMENT PRIMARY KEY,
		committed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		documents_added INT NOT NULL DEFAULT 0,
		documents_deleted INT NOT NULL DEFAULT 0,
		frames_added INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS setting (
		name VARCHAR(255) PRIMARY KEY,
		value TEXT
	)`,
}

// ensureSchema applies every DDL statement, in order, against db.
// Foreign-key-bearing tables are listed after the tables they reference
// so a fresh database creates cleanly in one pass.
func ensureSchema(ctx context.Context, exec execer) error {
	for _, stmt := range ddlStatements {
		if _, err := exec.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
