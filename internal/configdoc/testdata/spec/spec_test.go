package spec_test

type Spec struct {
	Decoy string `yaml:"decoy"`
}
