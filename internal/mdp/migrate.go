package mdp

// Migration renames Old to New, or marks Old obsolete when New is empty.
type Migration struct {
	Old string
	New string
}

// Replace renames every entry matching oldName to newName. With an empty
// newName the entries are marked obsolete instead; obsolete entries are kept
// but never reported as unknown by the writer. Value, set state and access
// order are left alone. Renaming onto a name already in the store leaves
// two entries with the same name and logs a warning. Returns the number of
// entries changed.
func (s *Store) Replace(oldName, newName string) int {
	key := NameKey(oldName)
	n := 0
	for _, e := range s.entries {
		if e.key != key {
			continue
		}
		n++
		if newName != "" {
			if i := s.Find(newName); i >= 0 && s.entries[i] != e {
				s.logger.Warn("renamed mdp entry duplicates an existing one; only the first is reachable",
					"old", e.Name, "new", newName)
			}
			s.logger.Info("replacing old mdp entry", "old", e.Name, "new", newName)
			e.Name = newName
			e.key = NameKey(newName)
			continue
		}
		s.logger.Info("ignoring obsolete mdp entry", "name", e.Name)
		e.Obsolete = true
	}
	return n
}

// Migrate applies migrations in order and returns the total number of
// entries changed.
func (s *Store) Migrate(migrations []Migration) int {
	n := 0
	for _, m := range migrations {
		n += s.Replace(m.Old, m.New)
	}
	return n
}
