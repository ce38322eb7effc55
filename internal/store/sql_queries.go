package store

const (
	createUser = `INSERT INTO users (username, password_hash)
    VALUES ($1, $2)
    RETURNING user_id, username, password_hash, active, role, created_at;`

	findUserByUsername = `SELECT user_id, username, password_hash, active, role, created_at
    FROM users
    WHERE username = $1;`

	findUserByID = `SELECT user_id, username, password_hash, active, role, created_at
    FROM users
    WHERE user_id = $1;`

	updateUserActive = `UPDATE users SET active = $2 WHERE user_id = $1;`

	updateUserRole = `UPDATE users SET role = $2 WHERE user_id = $1;`

	deleteNotesByUser = `DELETE FROM notes WHERE user_id = $1;`

	deleteUser = `DELETE FROM users WHERE user_id = $1;`
)

const (
	noteColumns = `note_id, user_id, title, COALESCE(content, ''), created_date, completed, reminder, COALESCE(image_path, '')`

	createNote = `INSERT INTO notes (user_id, title, content, created_date, completed, reminder, image_path)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING ` + noteColumns + `;`

	getNote = `SELECT ` + noteColumns + `
    FROM notes
    WHERE note_id = $1 AND user_id = $2;`

	listNotesByUser = `SELECT ` + noteColumns + `
    FROM notes
    WHERE user_id = $1
    ORDER BY note_id;`

	updateNote = `UPDATE notes
    SET title = $2, content = $3, completed = $4, reminder = $5, image_path = $6
    WHERE note_id = $1
    RETURNING ` + noteColumns + `;`

	deleteNote = `DELETE FROM notes WHERE note_id = $1;`

	toggleNoteCompletion = `UPDATE notes SET completed = NOT completed WHERE note_id = $1;`

	listPendingReminders = `SELECT ` + noteColumns + `
    FROM notes
    WHERE reminder IS NOT NULL AND completed = FALSE;`

	clearNoteReminder = `UPDATE notes SET reminder = NULL WHERE note_id = $1;`
)
