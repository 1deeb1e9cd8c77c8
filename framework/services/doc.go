// Package services provides the service-registration collection consumed by
// the hosting bootstrap, together with the minimal provider machinery needed
// to realize a registered collection.
//
// # Collection
//
// A Collection is an ordered list of registrations. It only captures intent;
// nothing is constructed until a ProviderFactory turns it into a Provider:
//
//	sc := services.NewCollection()
//	sc.AddSingleton("logger", func(p services.Provider) (any, error) {
//	    cfg, err := services.GetAs[*config.Snapshot](p, "config")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return logging.New(cfg), nil
//	})
//
//	provider, _ := services.DefaultFactory{}.CreateProvider(sc)
//	logger, _ := services.GetAs[*logging.Logger](provider, "logger")
//
// # Custom container factories
//
// ProviderFactory is deliberately non-generic: its container builder is an
// opaque value, which lets the hosting layer adapt container libraries whose
// builder type is not known until the application is assembled. DefaultFactory
// covers the common case where no external container is involved.
package services
