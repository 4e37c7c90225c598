// Package snapshot persists serialized property registries.
//
// Every save is a new row holding the flat JSON document produced by
// property.Registry.Serialize, so the newest row restores the device after a
// restart and older rows remain available to the dump command. Prune keeps
// the table bounded per device.
//
// Usage:
//
//	repo := snapshot.NewSQLiteRepository(db.DB)
//	doc, _ := reg.Serialize()
//	err := repo.Save(ctx, &snapshot.Snapshot{
//	    DeviceID:      cfg.Device.ID,
//	    Document:      doc,
//	    PropertyCount: reg.Size(),
//	    Reason:        snapshot.ReasonAutosave,
//	})
//
//	latest, err := repo.Latest(ctx, cfg.Device.ID)
//	if errors.Is(err, snapshot.ErrSnapshotNotFound) {
//	    // first boot: keep schema defaults
//	}
package snapshot
