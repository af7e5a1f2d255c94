package inspection

import "slices"

// DefaultSections returns the eight photographed areas of a standard
// inspection, without photos or ratings.
func DefaultSections() []PhotoSection {
	return []PhotoSection{
		{ID: "front_exterior", Name: "Front Exterior", Icon: "🚗"},
		{ID: "rear_exterior", Name: "Rear Exterior", Icon: "🚙"},
		{ID: "left_side", Name: "Left Side", Icon: "◀"},
		{ID: "right_side", Name: "Right Side", Icon: "▶"},
		{ID: "interior_dashboard", Name: "Interior / Dashboard", Icon: "🎛"},
		{ID: "engine_bay", Name: "Engine Bay", Icon: "⚙"},
		{ID: "tires", Name: "Tires & Wheels", Icon: "⭕"},
		{ID: "side_mirrors", Name: "Side Mirrors", Icon: "🔲"},
	}
}

// NewRecord returns a template record for v: the default sections and the
// default checklist with every item at its default value.
func NewRecord(v Vehicle) *Record {
	return &Record{
		Vehicle:   v,
		Sections:  DefaultSections(),
		Checklist: DefaultChecklist(),
	}
}

type optionSet struct {
	options []string
	warn    []string
}

func opts(options []string, warn ...string) optionSet {
	if warn == nil {
		warn = []string{}
	}
	return optionSet{options: options, warn: warn}
}

var (
	accident  = opts([]string{"Non-Accidented", "Accidented"}, "Accidented")
	okNotOk   = opts([]string{"Ok", "Not Ok"}, "Not Ok")
	working   = opts([]string{"Working", "Not Working"}, "Not Working")
	optional  = opts([]string{"Working", "Not Working", "N/A"}, "Not Working")
	noLeak    = opts([]string{"No Leakage", "Leakage"}, "Leakage")
	warnLight = opts([]string{"Not Present", "Present"}, "Present")
	present   = opts([]string{"Present", "Not Present"}, "Not Present")
	noNoise   = opts([]string{"No Noise", "Noise Present"}, "Noise Present")
	smooth    = opts([]string{"Smooth", "Worn", "Damaged"}, "Worn", "Damaged")
	scratches = opts([]string{"None", "Few", "Many", "Severe"}, "Many", "Severe")
	disc      = opts([]string{"Smooth", "Worn", "Scored", "Damaged"}, "Worn", "Scored", "Damaged")
	pad       = opts([]string{"More than 50%", "Less than 50%", "Critical"}, "Less than 50%", "Critical")
	boots     = opts([]string{"Ok", "Torn", "Damaged"}, "Torn", "Damaged")
	shock     = opts([]string{"Ok", "Leaking", "Worn", "Damaged"}, "Leaking", "Worn", "Damaged")
	rearBush  = opts([]string{"No Damage Found", "Worn", "Damaged"}, "Worn", "Damaged")
	window    = opts([]string{"Working Properly", "Slow", "Not Working"}, "Slow", "Not Working")
	trimTorn  = opts([]string{"Perfect", "Good", "Fair", "Dirty", "Torn"}, "Dirty", "Torn")
	yesNo     = opts([]string{"Yes", "No"}, "No")
	glass     = opts([]string{"Clear", "Scratches", "Chipped", "Cracked"}, "Scratches", "Chipped", "Cracked")
	doorGlass = opts([]string{"Ok", "Scratched", "Cracked"}, "Scratched", "Cracked")
	headlight = opts([]string{"Perfect", "Scratches", "Cracked", "Foggy"}, "Scratches", "Cracked", "Foggy")
	taillight = opts([]string{"Perfect", "Scratches", "Cracked"}, "Scratches", "Cracked")
	response  = opts([]string{"Timely Response", "Delayed", "Not Working"}, "Delayed", "Not Working")
	climate   = opts([]string{"Perfect", "Weak", "Not Working"}, "Weak", "Not Working")
)

func choice(id, label string, o optionSet) ChecklistItem {
	return ChecklistItem{
		ID:          id,
		Label:       label,
		Kind:        KindChoice,
		Options:     slices.Clone(o.options),
		WarnOptions: slices.Clone(o.warn),
		Value:       o.options[0],
	}
}

func text(id, label string) ChecklistItem {
	return ChecklistItem{ID: id, Label: label, Kind: KindText}
}

func sub(name string, items ...ChecklistItem) Subsection {
	return Subsection{Name: name, Items: items}
}

// DefaultChecklist returns the eleven standard checklist categories with every
// item at its default value.
func DefaultChecklist() []ChecklistCategory {
	return []ChecklistCategory{
		{ID: "body_damage", Name: "Body Damage", Icon: "🔴", Subsections: []Subsection{
			sub("Damage Assessment",
				choice("big_scratches", "Big Scratches", scratches),
				choice("minor_scratches", "Minor Scratches / Dents", scratches),
			),
		}},
		{ID: "body_frame", Name: "Body Frame Accident", Icon: "🚗", Subsections: []Subsection{
			sub("Frame Checklist",
				choice("radiator_core", "Radiator Core Support", accident),
				choice("right_strut_tower", "Right Strut Tower Apron", accident),
				choice("left_strut_tower", "Left Strut Tower Apron", accident),
				choice("right_front_rail", "Right Front Rail", accident),
				choice("left_front_rail", "Left Front Rail", accident),
				choice("cowl_panel", "Cowl Panel Firewall", accident),
				choice("right_a_pillar", "Right A Pillar", accident),
				choice("left_a_pillar", "Left A Pillar", accident),
				choice("right_b_pillar", "Right B Pillar", accident),
				choice("left_b_pillar", "Left B Pillar", accident),
				choice("right_c_pillar", "Right C Pillar", accident),
				choice("left_c_pillar", "Left C Pillar", accident),
				choice("right_d_pillar", "Right D Pillar", accident),
				choice("left_d_pillar", "Left D Pillar", accident),
				choice("boot_floor", "Boot Floor", accident),
				choice("boot_lock_pillar", "Boot Lock Pillar", accident),
				choice("rear_sub_frame", "Rear Sub Frame", accident),
				choice("front_sub_frame", "Front Sub Frame", accident),
			),
		}},
		{ID: "engine", Name: "Engine / Transmission", Icon: "⚙", Subsections: []Subsection{
			sub("Fluids & Filters",
				choice("oil_level", "Engine Oil Level", opts([]string{"Complete and Clean", "Low", "Dirty", "Low and Dirty"}, "Low", "Dirty", "Low and Dirty")),
				choice("oil_leakage", "Engine Oil Leakage", noLeak),
				choice("trans_oil", "Transmission Oil Leakage", noLeak),
				choice("coolant", "Coolant Leakage", noLeak),
				choice("brake_oil", "Brake Oil Leakage", noLeak),
			),
			sub("Mechanical Check",
				choice("belts", "Belts (Fan)", okNotOk),
				choice("wiring", "Wires (Wiring Harness)", okNotOk),
				choice("engine_blow", "Engine Blow (Manual Check)", warnLight),
				choice("engine_noise", "Engine Noise", noNoise),
				choice("engine_vibration", "Engine Vibration", opts([]string{"No Vibration", "Vibration Present"}, "Vibration Present")),
				choice("cold_start", "Cold Start", okNotOk),
				choice("engine_mounts", "Engine Mounts", okNotOk),
				choice("pulleys", "Pulleys (Adjuster)", okNotOk),
				choice("hoses", "Hoses", okNotOk),
			),
			sub("Exhaust & Cooling",
				choice("exhaust_sound", "Exhaust Sound", okNotOk),
				choice("radiator_eng", "Radiator", okNotOk),
				choice("suction_fan", "Suction Fan", working),
			),
			sub("Engine Electronics",
				choice("starter", "Starter Operation", okNotOk),
			),
		}},
		{ID: "brakes", Name: "Brakes", Icon: "🛑", Subsections: []Subsection{
			sub("Disc & Pads",
				choice("fr_disc", "Front Right Disc", disc),
				choice("fl_disc", "Front Left Disc", disc),
				choice("fr_pad", "Front Right Brake Pad", pad),
				choice("fl_pad", "Front Left Brake Pad", pad),
			),
		}},
		{ID: "suspension", Name: "Suspension / Steering", Icon: "🔩", Subsections: []Subsection{
			sub("Front Suspension",
				choice("steering_play", "Steering Wheel Play", opts([]string{"Ok", "Excessive"}, "Excessive")),
				choice("right_ball_joint", "Right Ball Joint", smooth),
				choice("left_ball_joint", "Left Ball Joint", smooth),
				choice("right_z_links", "Right Z Links", smooth),
				choice("left_z_links", "Left Z Links", smooth),
				choice("right_tie_rod", "Right Tie Rod End", smooth),
				choice("left_tie_rod", "Left Tie Rod End", smooth),
				choice("fr_boots", "Front Right Boots", boots),
				choice("fl_boots", "Front Left Boots", boots),
				choice("fr_bushes", "Front Right Bushes", smooth),
				choice("fl_bushes", "Front Left Bushes", smooth),
				choice("fr_shock", "Front Right Shock", shock),
				choice("fl_shock", "Front Left Shock", shock),
			),
			sub("Rear Suspension",
				choice("rr_bushes", "Rear Right Bushes", rearBush),
				choice("rl_bushes", "Rear Left Bushes", rearBush),
				choice("rr_shock", "Rear Right Shock", shock),
				choice("rl_shock", "Rear Left Shock", shock),
			),
		}},
		{ID: "interior", Name: "Interior", Icon: "🎛", Subsections: []Subsection{
			sub("Steering Controls",
				choice("steer_wheel_cond", "Steering Wheel Condition", opts([]string{"Perfect", "Scratched", "Damaged"}, "Damaged")),
				choice("steer_buttons", "Steering Wheel Buttons", working),
				choice("horn", "Horn", working),
				choice("lights_lever", "Lights Lever / Switch", working),
				choice("wiper_lever", "Wiper / Washer Lever", working),
			),
			sub("Mirrors",
				choice("right_mirror", "Right Side Mirror", working),
				choice("left_mirror", "Left Side Mirror", working),
				choice("rear_mirror_dimmer", "Rear View Mirror Dimmer", opts([]string{"Showing Reflection", "Not Working"}, "Not Working")),
			),
			sub("Seats & Belts",
				choice("rf_seat_electric", "Right Front Seat Electric", optional),
				choice("lf_seat_electric", "Left Front Seat Electric", optional),
				choice("right_seatbelt", "Right Seat Belt", working),
				choice("left_seatbelt", "Left Seat Belt", working),
				choice("rear_seatbelts", "Rear Seat Belts", working),
				choice("glove_box", "Glove Box", working),
			),
			sub("Windows & Locking",
				choice("fr_window", "Front Right Power Window", window),
				choice("fl_window", "Front Left Power Window", window),
				choice("rr_window", "Rear Right Power Window", window),
				choice("rl_window", "Rear Left Power Window", window),
				choice("auto_lock", "Auto Lock Button", working),
				choice("safety_lock", "Window Safety Lock", working),
			),
			sub("Dash / Roof Controls",
				choice("interior_lights", "Interior Lightings", working),
				choice("dash_ac", "Dash Controls: A/C", working),
				choice("dash_defog", "Dash Controls: De-Fog", working),
				choice("dash_hazard", "Dash Controls: Hazard Lights", working),
				choice("dash_parking", "Dash Controls: Parking Button", optional),
				choice("dash_others", "Dash Controls: Others", working),
				choice("audio_video", "Audio / Video", working),
				choice("rear_camera", "Rear View Camera", optional),
				choice("trunk_release", "Trunk Release Lever / Button", working),
				choice("fuel_release", "Fuel Cap Release Lever", working),
				choice("bonnet_release", "Bonnet Release Lever", working),
				choice("sunroof_ctrl", "Sun Roof Control Button", optional),
			),
			sub("Interior Trim (Poshish)",
				choice("roof_poshish", "Roof Poshish", trimTorn),
				choice("floor_mat", "Floor Mat", opts([]string{"Perfect", "Good", "Fair", "Dirty", "Missing"}, "Dirty", "Missing")),
				choice("rf_seat_poshish", "Front Right Seat Poshish", trimTorn),
				choice("lf_seat_poshish", "Front Left Seat Poshish", trimTorn),
				choice("rear_seat_poshish", "Rear Seat Poshish", trimTorn),
				choice("dashboard_cond", "Dashboard Condition", opts([]string{"Perfect", "Good", "Fair", "Cracked", "Damaged"}, "Cracked", "Damaged")),
			),
			sub("Equipment",
				choice("spare_tire", "Spare Tire", present),
				choice("tools", "Tools", opts([]string{"Complete", "Incomplete", "Not Present"}, "Incomplete", "Not Present")),
				choice("jack", "Jack", present),
			),
		}},
		{ID: "ac_heater", Name: "AC / Heater", Icon: "❄", Subsections: []Subsection{
			sub("AC & Heater Check",
				choice("ac_fitted", "AC Fitted", yesNo),
				choice("ac_operation", "AC Operational", yesNo),
				choice("blower", "Blower", opts([]string{"Excellent Air Throw", "Good", "Weak", "Not Working"}, "Weak", "Not Working")),
				choice("cooling", "Cooling", opts([]string{"Excellent", "Good", "Fair", "Not Cooling"}, "Not Cooling")),
				choice("heating", "Heating", opts([]string{"Excellent", "Good", "Fair", "Not Heating"}, "Not Heating")),
			),
		}},
		{ID: "electrical", Name: "Electrical & Electronics", Icon: "⚡", Subsections: []Subsection{
			sub("Computer / Warning Lights",
				choice("computer_check", "Computer Check / Malfunction", opts([]string{"Clear", "Error"}, "Error")),
				choice("battery_warning", "Battery Warning Light", warnLight),
				choice("oil_pressure_warning", "Oil Pressure Low Warning Light", warnLight),
				choice("temp_warning", "Temperature Warning Light", warnLight),
				choice("airbag_warning", "Air Bag Warning Light", warnLight),
				choice("ps_warning", "Power Steering Warning Light", warnLight),
				choice("abs_warning", "ABS Warning Light", warnLight),
				choice("keyfob_warning", "Key Fob Battery Low Light", warnLight),
			),
			sub("Battery",
				text("battery_voltage", "Voltage"),
				choice("terminals", "Terminals Condition", opts([]string{"Ok", "Corroded", "Damaged"}, "Corroded", "Damaged")),
				choice("charging", "Charging", opts([]string{"Ok", "Not Charging"}, "Not Charging")),
				choice("alternator", "Alternator Operation", opts([]string{"Ok", "Not Working"}, "Not Working")),
			),
			sub("Instrument Cluster",
				choice("gauges", "Gauges", opts([]string{"Working", "Partial", "Not Working"}, "Partial", "Not Working")),
			),
		}},
		{ID: "exterior", Name: "Exterior & Body", Icon: "🚙", Subsections: []Subsection{
			sub("Glass & Wipers",
				choice("trunk_lock", "Trunk Lock", okNotOk),
				choice("front_windshield", "Front Windshield Condition", glass),
				choice("rear_windshield", "Rear Windshield Condition", glass),
				choice("fr_door_window", "Front Right Door Window", doorGlass),
				choice("fl_door_window", "Front Left Door Window", doorGlass),
				choice("rr_door_window", "Rear Right Door Window", doorGlass),
				choice("rl_door_window", "Rear Left Door Window", doorGlass),
				choice("wiper", "Windscreen Wiper", opts([]string{"Working", "Not Cleaning Properly", "Not Working"}, "Not Cleaning Properly", "Not Working")),
				choice("sunroof_glass", "Sun Roof Glass", opts([]string{"Clear", "Scratches", "Cracked", "N/A"}, "Scratches", "Cracked")),
			),
			sub("Exterior Lights",
				choice("rh_working", "Right Headlight (Working)", working),
				choice("lh_working", "Left Headlight (Working)", working),
				choice("rh_cond", "Right Headlight (Condition)", headlight),
				choice("lh_cond", "Left Headlight (Condition)", headlight),
				choice("rt_working", "Right Taillight (Working)", working),
				choice("lt_working", "Left Taillight (Working)", working),
				choice("rt_cond", "Right Taillight (Condition)", taillight),
				choice("lt_cond", "Left Taillight (Condition)", taillight),
				choice("fog_lights", "Fog Lights (Working)", optional),
			),
		}},
		{ID: "tyres", Name: "Tyres & Wheels", Icon: "⭕", Subsections: []Subsection{
			sub("Tyre Details",
				text("fr_tyre_brand", "Front Right Tyre Brand"),
				text("fr_tyre_tread", "Front Right Tread Depth"),
				text("fl_tyre_brand", "Front Left Tyre Brand"),
				text("fl_tyre_tread", "Front Left Tread Depth"),
				text("rr_tyre_brand", "Rear Right Tyre Brand"),
				text("rr_tyre_tread", "Rear Right Tread Depth"),
				text("rl_tyre_brand", "Rear Left Tyre Brand"),
				text("rl_tyre_tread", "Rear Left Tread Depth"),
				text("tyre_size", "Tyre Size"),
				choice("rims", "Rims", opts([]string{"Alloy", "Steel", "Damaged", "Missing"}, "Damaged", "Missing")),
				choice("wheel_caps", "Wheel Caps", present),
			),
		}},
		{ID: "test_drive", Name: "Test Drive", Icon: "🏁", Subsections: []Subsection{
			sub("Test Drive Observations",
				choice("engine_pick", "Engine Pick", okNotOk),
				choice("drive_shaft_noise", "Drive Shaft Noise", noNoise),
				choice("gear_shifting", "Gear Shifting", opts([]string{"Smooth", "Jerky", "Delayed", "Hard"}, "Jerky", "Delayed", "Hard")),
				choice("brake_pedal", "Brake Pedal Operation", opts([]string{"Timely Response", "Delayed", "Spongy", "Hard"}, "Delayed", "Spongy", "Hard")),
				choice("abs_operation", "ABS Operation", response),
				choice("front_susp_driving", "Front Suspension (While Driving)", noNoise),
				choice("rear_susp_driving", "Rear Suspension (While Driving)", noNoise),
				choice("steering_driving", "Steering Operation (While Driving)", opts([]string{"Smooth", "Heavy", "Vibrating"}, "Heavy", "Vibrating")),
				choice("steering_alignment", "Steering Wheel Alignment", opts([]string{"Centered", "Pulls Left", "Pulls Right"}, "Pulls Left", "Pulls Right")),
				choice("ac_driving", "AC Operation (While Driving)", climate),
				choice("heater_driving", "Heater Operation (While Driving)", climate),
				choice("speedometer", "Speedometer (While Driving)", working),
				choice("test_drive_by", "Test Drive Done By", opts([]string{"Inspector", "Seller", "Both", "Not Done"})),
			),
		}},
	}
}
